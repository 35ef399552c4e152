package engine

import "ModelPreview/internal/config"

// colorRef packs a color as a Win32 COLORREF (0x00BBGGRR).
func colorRef(c config.Color) uint32 {
	return uint32(channel(c.R)) | uint32(channel(c.G))<<8 | uint32(channel(c.B))<<16
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

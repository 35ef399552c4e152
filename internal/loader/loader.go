package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"ModelPreview/internal/logger"
	"ModelPreview/internal/scene"

	"go.uber.org/zap"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrPending       = errors.New("asset still loading")
	ErrDecoderPanic  = errors.New("decoder panicked")
)

// Decoder turns an asset file into a scene graph.
type Decoder interface {
	Decode(filename string) (*scene.Node, error)
}

// Handle is a loaded, ready to render asset. It belongs to whoever asked
// for it; two loads of the same path return two independent handles.
type Handle struct {
	Path string
	Root *scene.Node
}

// Pending is the eventual result of Load.
type Pending struct {
	path   string
	done   chan struct{}
	once   sync.Once
	handle *Handle
	err    error
}

func newPending(assetPath string) *Pending {
	return &Pending{path: assetPath, done: make(chan struct{})}
}

func (p *Pending) resolve(h *Handle, err error) {
	p.once.Do(func() {
		p.handle = h
		p.err = err
		close(p.done)
	})
}

func (p *Pending) Path() string {
	return p.path
}

// Done is closed once the load finished, successfully or not.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result returns the handle or the load error, ErrPending while unresolved.
func (p *Pending) Result() (*Handle, error) {
	select {
	case <-p.done:
		return p.handle, p.err
	default:
		return nil, ErrPending
	}
}

type Loader struct {
	root    string
	decoder Decoder
}

// New serves asset paths such as "/table.glb" from the directory root.
func New(root string, decoder Decoder) *Loader {
	return &Loader{root: root, decoder: decoder}
}

// Resolve maps an asset path onto the filesystem. Paths cannot escape root.
func (l *Loader) Resolve(assetPath string) (string, error) {
	clean := path.Clean("/" + assetPath)
	filename := filepath.Join(l.root, filepath.FromSlash(clean))

	info, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, assetPath)
	}
	return filename, nil
}

// Load decodes the asset in the background. Cancelling ctx abandons the
// result: the decode still runs to completion but the handle is dropped.
func (l *Loader) Load(ctx context.Context, assetPath string) *Pending {
	p := newPending(assetPath)

	go func() {
		h, err := l.load(assetPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Log.Debug("Discarding asset load after cancel", zap.String("path", assetPath))
			p.resolve(nil, ctxErr)
			return
		}
		p.resolve(h, err)
	}()

	// Resolve early on cancel so waiters are not held by a slow decode.
	go func() {
		select {
		case <-ctx.Done():
			p.resolve(nil, ctx.Err())
		case <-p.done:
		}
	}()

	return p
}

func (l *Loader) load(assetPath string) (*Handle, error) {
	filename, err := l.Resolve(assetPath)
	if err != nil {
		return nil, err
	}

	root, err := l.decode(filename)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", assetPath, err)
	}

	disableShadows(root)

	logger.Log.Info("Asset loaded",
		zap.String("path", assetPath),
		zap.Int("meshes", len(root.Meshes())))

	return &Handle{Path: assetPath, Root: root}, nil
}

// decode runs off the render goroutine, a panicking decoder must not take
// the process down with it.
func (l *Loader) decode(filename string) (root *scene.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = fmt.Errorf("%w: %v", ErrDecoderPanic, r)
		}
	}()
	return l.decoder.Decode(filename)
}

// disableShadows is applied to every loaded asset regardless of how the
// file authored its shadow flags.
func disableShadows(root *scene.Node) {
	root.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			n.Mesh.CastShadow = false
			n.Mesh.ReceiveShadow = false
		}
	})
}

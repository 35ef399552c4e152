package renderer

import (
	"fmt"
	"strings"

	"ModelPreview/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Uniforms() *UniformCache {
	return shader.uniforms
}

func (shader *Shader) Compile() error {
	vs, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fs, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return err
	}
	program, err := GenShaderProgram(vs, fs)
	if err != nil {
		return err
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

var vertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;
uniform mat3 normalMatrix;

out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = normalMatrix * inNormal;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

// The fragment stage follows the punctual light model: inverse-square decay
// for point and spot lights, smoothstep between cone and penumbra cosines
// with a hard edge when there is no penumbra.
var fragmentShaderSource = `#version 410 core
#define MAX_LIGHTS ` + fmt.Sprint(MaxLightsPerKind) + `
#define RECIPROCAL_PI 0.3183098861837907

in vec3 Normal;
in vec3 FragPos;

struct DirectionalLight {
    vec3 direction; // toward the light
    vec3 color;
};

struct PointLight {
    vec3 position;
    vec3 color;
};

struct SpotLight {
    vec3 position;
    vec3 direction; // from the light toward its target
    vec3 color;
    float coneCos;
    float penumbraCos;
};

uniform vec3 ambientColor;
uniform int directionalCount;
uniform DirectionalLight directionalLights[MAX_LIGHTS];
uniform int pointCount;
uniform PointLight pointLights[MAX_LIGHTS];
uniform int spotCount;
uniform SpotLight spotLights[MAX_LIGHTS];
uniform vec3 diffuseColor;

out vec4 FragColor;

float distanceFalloff(float d) {
    return 1.0 / max(d * d, 0.01);
}

// smoothstep is undefined for equal edges, a zero penumbra is a hard edge.
float spotCone(float coneCos, float penumbraCos, float angleCos) {
    if (penumbraCos <= coneCos) {
        return step(coneCos, angleCos);
    }
    return smoothstep(coneCos, penumbraCos, angleCos);
}

void main() {
    vec3 norm = normalize(Normal);
    if (!gl_FrontFacing) {
        norm = -norm;
    }

    vec3 irradiance = ambientColor;

    for (int i = 0; i < directionalCount; i++) {
        float nl = max(dot(norm, directionalLights[i].direction), 0.0);
        irradiance += nl * directionalLights[i].color;
    }

    for (int i = 0; i < pointCount; i++) {
        vec3 toLight = pointLights[i].position - FragPos;
        float nl = max(dot(norm, normalize(toLight)), 0.0);
        irradiance += nl * pointLights[i].color * distanceFalloff(length(toLight));
    }

    for (int i = 0; i < spotCount; i++) {
        vec3 toLight = spotLights[i].position - FragPos;
        vec3 l = normalize(toLight);
        float angleCos = dot(-l, spotLights[i].direction);
        float cone = spotCone(spotLights[i].coneCos, spotLights[i].penumbraCos, angleCos);
        float nl = max(dot(norm, l), 0.0);
        irradiance += nl * spotLights[i].color * cone * distanceFalloff(length(toLight));
    }

    vec3 linear = irradiance * diffuseColor * RECIPROCAL_PI;
    FragColor = vec4(pow(clamp(linear, 0.0, 1.0), vec3(1.0 / 2.2)), 1.0);
}
` + "\x00"

func InitShader() Shader {
	return Shader{
		vertexSource:   vertexShaderSource,
		fragmentSource: fragmentShaderSource,
	}
}

// The text quad has no vertex buffer: four strip vertices are derived from
// gl_VertexID and cover the whole viewport. Image rows run top to bottom.
var textVertexShaderSource = `#version 410 core

out vec2 TexCoord;

void main() {
    vec2 corner = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1));
    TexCoord = vec2(corner.x, 1.0 - corner.y);
    gl_Position = vec4(corner * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

var textFragmentShaderSource = `#version 410 core

in vec2 TexCoord;

uniform sampler2D glyphs;

out vec4 FragColor;

void main() {
    FragColor = texture(glyphs, TexCoord);
}
` + "\x00"

func InitTextShader() Shader {
	return Shader{
		vertexSource:   textVertexShaderSource,
		fragmentSource: textFragmentShaderSource,
	}
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile shader type %d: %s", shaderType, log)
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link shader program: %s", log)
	}
	return program, nil
}

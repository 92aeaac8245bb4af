package rlgfx

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/sirupsen/logrus"
)

// The dashed program receives the arc length in texcoord.x. Attribute and
// uniform names follow raylib's defaults so rlgl binds them for us.
const dashedVertexSource = `
IN vec3 vertexPosition;
IN vec2 vertexTexCoord;
uniform mat4 mvp;
uniform mat4 view_model_matrix;
uniform mat4 projection_matrix;
OUT float arcLength;
void main() {
    arcLength = vertexTexCoord.x;
    gl_Position = projection_matrix * view_model_matrix * mvp * vec4(vertexPosition, 1.0);
}
`

const dashedFragmentSource = `
IN float arcLength;
uniform vec4 uniform_color;
uniform float dash_size;
uniform float gap_size;
FRAGDECL
void main() {
    if (mod(arcLength, dash_size + gap_size) > dash_size)
        discard;
    FRAGOUT = uniform_color;
}
`

const flatFragmentSource = `
uniform vec4 uniform_color;
FRAGDECL
void main() {
    FRAGOUT = uniform_color;
}
`

const flatVertexSource = `
IN vec3 vertexPosition;
uniform mat4 mvp;
uniform mat4 view_model_matrix;
uniform mat4 projection_matrix;
void main() {
    gl_Position = projection_matrix * view_model_matrix * mvp * vec4(vertexPosition, 1.0);
}
`

// specialize rewrites the portable sources for the GLSL dialect of the context
func specialize(header, source string, vertex bool) string {
	modern := strings.Contains(header, "330") || strings.Contains(header, "300 es")

	in, out, fragDecl, fragOut := "attribute", "varying", "", "gl_FragColor"
	if !vertex {
		in = "varying"
	}
	if modern {
		in, out, fragDecl, fragOut = "in", "out", "out vec4 finalColor;", "finalColor"
	}

	r := strings.NewReplacer("IN ", in+" ", "OUT ", out+" ", "FRAGDECL", fragDecl, "FRAGOUT", fragOut)
	return header + r.Replace(source)
}

// Registry compiles the overlay programs lazily and hands them out by name
type Registry struct {
	log      logrus.FieldLogger
	programs map[string]*Program
	failed   map[string]bool
}

func NewRegistry(log logrus.FieldLogger) *Registry {
	return &Registry{
		log:      log.WithField("component", "shaders"),
		programs: make(map[string]*Program),
		failed:   make(map[string]bool),
	}
}

var shaderSources = map[string][2]string{
	selection.ShaderDashedLines: {dashedVertexSource, dashedFragmentSource},
	selection.ShaderFlat:        {flatVertexSource, flatFragmentSource},
}

// Shader returns the named program, compiling it on first use. Unknown
// names and failed compilations report false.
func (r *Registry) Shader(name string) (selection.Shader, bool) {
	if p, ok := r.programs[name]; ok {
		return p, true
	}
	if r.failed[name] {
		return nil, false
	}

	src, ok := shaderSources[name]
	if !ok || DetectCapability() != selection.Programmable {
		r.failed[name] = true
		return nil, false
	}

	header := glslHeader()
	shader := rl.LoadShaderFromMemory(specialize(header, src[0], true), specialize(header, src[1], false))
	if shader.ID == 0 || shader.ID == rl.GetShaderIdDefault() {
		r.log.WithField("shader", name).Warn("shader failed to compile, overlay disabled")
		r.failed[name] = true
		return nil, false
	}

	p := newProgram(shader)
	r.programs[name] = p
	r.log.WithField("shader", name).Debug("shader loaded")
	return p, true
}

// Unload frees every compiled program
func (r *Registry) Unload() {
	for name, p := range r.programs {
		rl.UnloadShader(p.shader)
		delete(r.programs, name)
	}
}

// Program wraps a raylib shader and caches uniform locations
type Program struct {
	shader    rl.Shader
	locations map[string]int32
}

func newProgram(shader rl.Shader) *Program {
	return &Program{shader: shader, locations: make(map[string]int32)}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := rl.GetShaderLocation(p.shader, name)
	p.locations[name] = loc
	return loc
}

func (p *Program) Begin() { rl.BeginShaderMode(p.shader) }
func (p *Program) End()   { rl.EndShaderMode() }

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc >= 0 {
		rl.SetShaderValue(p.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (p *Program) SetVec2(name string, v [2]float32) {
	if loc := p.location(name); loc >= 0 {
		rl.SetShaderValue(p.shader, loc, v[:], rl.ShaderUniformVec2)
	}
}

func (p *Program) SetVec4(name string, v [4]float32) {
	if loc := p.location(name); loc >= 0 {
		rl.SetShaderValue(p.shader, loc, v[:], rl.ShaderUniformVec4)
	}
}

func (p *Program) SetIdentity(name string) {
	if loc := p.location(name); loc >= 0 {
		rl.SetShaderValueMatrix(p.shader, loc, rl.MatrixIdentity())
	}
}

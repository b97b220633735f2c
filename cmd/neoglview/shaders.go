package main

// This file supplies the GLSL text the core deliberately leaves out
// (driver.ShaderDefines' doc comment: "authoring the GLSL text itself
// is out of scope"). One vertex shader and one fragment preamble are
// shared by every program kind; each kind then gets its own fragment
// body appended to that preamble.
//
// Every draw's vertex position already carries the node's local
// bounds; the vertex stage applies modelview then projection, the
// same order renderjob/draw.go's applyCommon writes the two matrices
// in. v_world carries the post-modelview (pre-projection) position
// forward to the fragment stage, since renderjob/clip.go keeps clip
// rects in that same space.

const vertexSrc = `#version 330 core
layout(location = 0) in vec2 a_pos;
layout(location = 1) in vec2 a_uv;
layout(location = 2) in vec4 a_color;
layout(location = 3) in vec4 a_color2;

uniform mat4 u_modelview;
uniform mat4 u_projection;

out vec2 v_uv;
out vec4 v_color;
out vec4 v_color2;
out vec2 v_world;

void main() {
	vec4 world = u_modelview * vec4(a_pos, 0.0, 1.0);
	v_world = world.xy;
	v_uv = a_uv;
	v_color = a_color;
	v_color2 = a_color2;
	gl_Position = u_projection * world;
}
`

// fragPreamble declares the uniforms and helpers every fragment body
// below relies on: the ambient alpha and clip rect every draw carries
// (uniform.SharedUniform), a rounded-rect coverage test, and the two
// ways a body turns its own math into the premultiplied output the
// blend state (ONE, ONE_MINUS_SRC_ALPHA) expects.
const fragPreamble = `#version 330 core
in vec2 v_uv;
in vec4 v_color;
in vec4 v_color2;
in vec2 v_world;
out vec4 fragColor;

uniform float u_alpha;
uniform vec4 u_clip_rect[3];

float cornerCoverage(vec2 p, vec2 corner, vec2 center, vec2 radii) {
	if (radii.x <= 0.0 || radii.y <= 0.0) {
		return 1.0;
	}
	vec2 rel = (p - corner) / radii;
	if (sign(rel.x) != sign(center.x - corner.x) && center.x != corner.x) {
		return 1.0;
	}
	if (sign(rel.y) != sign(center.y - corner.y) && center.y != corner.y) {
		return 1.0;
	}
	return step(dot(rel, rel), 1.0);
}

// clipCoverage tests p against the rounded rect packed into
// u_clip_rect the way glm.RoundedRect.Outline lays it out: bounds,
// then the four corner radii pairs in top-left/top-right/bottom-
// right/bottom-left order.
float clipCoverage(vec2 p) {
	vec4 bounds = u_clip_rect[0];
	if (p.x < bounds.x || p.x > bounds.z || p.y < bounds.y || p.y > bounds.w) {
		return 0.0;
	}
	vec2 center = vec2((bounds.x + bounds.z) * 0.5, (bounds.y + bounds.w) * 0.5);
	vec2 tl = u_clip_rect[1].xy;
	vec2 tr = u_clip_rect[1].zw;
	vec2 br = u_clip_rect[2].xy;
	vec2 bl = u_clip_rect[2].zw;
	float c = 1.0;
	c = min(c, cornerCoverage(p, bounds.xy, center, tl));
	c = min(c, cornerCoverage(p, vec2(bounds.z, bounds.y), center, tr));
	c = min(c, cornerCoverage(p, bounds.zw, center, br));
	c = min(c, cornerCoverage(p, vec2(bounds.x, bounds.w), center, bl));
	return c;
}

// finalColor premultiplies a straight-alpha color and scales it by
// the ambient alpha and clip coverage.
vec4 finalColor(vec4 straight, vec2 world) {
	float cov = u_alpha * clipCoverage(world);
	return vec4(straight.rgb * straight.a * cov, straight.a * cov);
}

// finalPremultiplied scales an already-premultiplied color (sampled
// from an offscreen render target, itself a finalColor output) by
// the ambient alpha and clip coverage without premultiplying again.
vec4 finalPremultiplied(vec4 premultiplied, vec2 world) {
	float cov = u_alpha * clipCoverage(world);
	return premultiplied * cov;
}

float sdBox(vec2 p, vec4 bounds) {
	vec2 center = vec2((bounds.x + bounds.z) * 0.5, (bounds.y + bounds.w) * 0.5);
	vec2 half_ = vec2((bounds.z - bounds.x) * 0.5, (bounds.w - bounds.y) * 0.5);
	vec2 q = abs(p - center) - half_;
	return length(max(q, vec2(0.0))) + min(max(q.x, q.y), 0.0);
}
`

// fragColorFlat backs ProgFlatColor and ProgFallback: a plain vertex-
// color fill, no texture.
const fragColorFlat = fragPreamble + `
void main() {
	fragColor = finalColor(v_color, v_world);
}
`

// fragColor backs ProgColor: a vertex-color fill sampled through an
// opaque white texel, kept as a real texture read so the path matches
// every other textured program's uniform set.
const fragColor = fragPreamble + `
uniform sampler2D u_source;
void main() {
	vec4 tex = texture(u_source, v_uv);
	fragColor = finalColor(v_color * tex, v_world);
}
`

// fragTexture backs ProgTexture and ProgRepeat's plain-sample case:
// the common tail of every offscreen-blit and loaded-texture draw.
// Both the offscreen render targets and driver.LoadTexture's cached
// textures are stored premultiplied (driver.go's LoadTexture runs a
// ConvPremultiply pass on anything that is not already), so the
// sampled value is passed straight through rather than re-
// premultiplied.
const fragTexture = fragPreamble + `
uniform sampler2D u_source;
void main() {
	fragColor = finalPremultiplied(texture(u_source, v_uv), v_world);
}
`

// fragRepeat backs ProgRepeat: wraps the sample UV into u_source_uv's
// sub-rect of the shared atlas/offscreen texture (KeySourceUV) before
// the plain texture lookup, giving a tiled read without a second
// texture unit.
const fragRepeat = fragPreamble + `
uniform sampler2D u_source;
uniform vec4 u_source_uv;
void main() {
	vec2 uv = u_source_uv.xy + fract(v_uv) * (u_source_uv.zw - u_source_uv.xy);
	fragColor = finalPremultiplied(texture(u_source, uv), v_world);
}
`

// fragGradientBody backs ProgLinearGradient, ProgRadialGradient and
// ProgConicGradient: up to 6 color stops, evaluated with a position
// measure that differs per kind (t below), selected by a #define each
// kind's combined source (fragGradientLinear/Radial/Conic) supplies
// ahead of the body, since GLSL requires #version to stay the very
// first thing in the source.
const fragGradientBody = `
#define MAX_STOPS 6
uniform vec4 u_stop_colors[MAX_STOPS];
uniform float u_stop_offsets[MAX_STOPS];
uniform int u_stop_count;
uniform vec2 u_center;
uniform vec2 u_offset; // gradient start (linear) / inner radii (radial)
uniform vec2 u_size;   // gradient end (linear) / outer radii (radial)
uniform vec2 u_radii;
uniform float u_angle;
uniform int u_repeat_flag;

vec4 stopAt(float t) {
	if (u_repeat_flag != 0) {
		t = fract(t);
	}
	t = clamp(t, 0.0, 1.0);
	if (t <= u_stop_offsets[0]) {
		return u_stop_colors[0];
	}
	for (int i = 1; i < u_stop_count; i++) {
		if (t <= u_stop_offsets[i]) {
			float span = max(u_stop_offsets[i] - u_stop_offsets[i - 1], 0.00001);
			float f = clamp((t - u_stop_offsets[i - 1]) / span, 0.0, 1.0);
			return mix(u_stop_colors[i - 1], u_stop_colors[i], f);
		}
	}
	return u_stop_colors[u_stop_count - 1];
}

void main() {
	float t;
#if defined(GRADIENT_RADIAL)
	vec2 d = (v_world - u_center) / max(u_radii, vec2(0.00001));
	t = length(d);
#elif defined(GRADIENT_CONIC)
	vec2 d = v_world - u_center;
	t = (atan(d.y, d.x) - u_angle) / 6.2831853 + 0.5;
#else
	vec2 axis = u_size - u_offset;
	float len2 = max(dot(axis, axis), 0.00001);
	t = dot(v_world - u_offset, axis) / len2;
#endif
	fragColor = finalColor(stopAt(t), v_world);
}
`

const fragGradientLinear = fragPreamble + fragGradientBody
const fragGradientRadial = fragPreamble + "#define GRADIENT_RADIAL\n" + fragGradientBody
const fragGradientConic = fragPreamble + "#define GRADIENT_CONIC\n" + fragGradientBody

// fragBorder backs ProgBorderShader: a rounded or skewed border,
// approximated as the ring between an outer and an inner rounded
// rect, with per-edge color and width picked by the nearest-edge
// quadrant of the sample point.
const fragBorder = fragPreamble + `
uniform vec4 u_rounded_rect[3];
uniform vec4 u_widths; // top, right, bottom, left
uniform vec4 u_color[4]; // top, right, bottom, left, straight alpha

vec4 edgeColorAt(vec2 p, vec4 bounds) {
	float cx = (bounds.x + bounds.z) * 0.5;
	float cy = (bounds.y + bounds.w) * 0.5;
	float dx = (p.x - cx) / max((bounds.z - bounds.x) * 0.5, 0.0001);
	float dy = (p.y - cy) / max((bounds.w - bounds.y) * 0.5, 0.0001);
	if (abs(dx) > abs(dy)) {
		return dx > 0.0 ? u_color[1] : u_color[3];
	}
	return dy > 0.0 ? u_color[2] : u_color[0];
}

void main() {
	vec4 bounds = u_rounded_rect[0];
	vec2 tl = u_rounded_rect[1].xy;
	vec2 tr = u_rounded_rect[1].zw;
	vec2 br = u_rounded_rect[2].xy;
	vec2 bl = u_rounded_rect[2].zw;
	float outer = step(sdBox(v_world, bounds), 0.0);
	float minWidth = min(min(u_widths.x, u_widths.y), min(u_widths.z, u_widths.w));
	vec4 inner = vec4(bounds.x + u_widths.w, bounds.y + u_widths.x, bounds.z - u_widths.y, bounds.w - u_widths.z);
	float innerIn = step(sdBox(v_world, inner), 0.0);
	float coverage = outer * (1.0 - innerIn);
	vec4 color = edgeColorAt(v_world, bounds);
	fragColor = finalColor(vec4(color.rgb, color.a * coverage), v_world);
}
`

// fragShadowInset and fragShadowOutset back ProgInsetShadow and
// ProgUnblurredOutsetShadow: a soft-edged box approximating the
// rounded shape (the corner radii are read from u_rounded_rect but
// not folded into the distance test, a deliberate simplification
// since pixel-accurate rounded shadow falloff is out of scope here).
const fragShadowInset = fragPreamble + `
uniform vec4 u_rounded_rect[3];
uniform vec4 u_widths; // spread, blur radius, dx, dy
uniform vec4 u_color;

void main() {
	vec4 bounds = u_rounded_rect[0];
	vec4 sBounds = vec4(bounds.x + u_widths.x, bounds.y + u_widths.x, bounds.z - u_widths.x, bounds.w - u_widths.x);
	vec2 p = v_world - vec2(u_widths.z, u_widths.w);
	float edgeDist = -sdBox(p, sBounds);
	float blur = max(u_widths.y, 0.0001);
	float coverage = edgeDist < 0.0 ? 0.0 : 1.0 - smoothstep(0.0, blur, edgeDist);
	fragColor = finalColor(vec4(u_color.rgb, u_color.a * coverage), v_world);
}
`

const fragShadowOutset = fragPreamble + `
uniform vec4 u_rounded_rect[3];
uniform vec4 u_widths; // spread, blur radius, dx, dy
uniform vec4 u_color;

void main() {
	vec4 bounds = u_rounded_rect[0];
	vec4 sBounds = vec4(bounds.x - u_widths.x, bounds.y - u_widths.x, bounds.z + u_widths.x, bounds.w + u_widths.x);
	vec2 p = v_world - vec2(u_widths.z, u_widths.w);
	float dist = sdBox(p, sBounds);
	float blur = max(u_widths.y, 0.0001);
	float coverage = 1.0 - smoothstep(0.0, blur, dist);
	fragColor = finalColor(vec4(u_color.rgb, u_color.a * coverage), v_world);
}
`

// fragShadowTint backs ProgShadowTint: tints a rendered shadow
// shape's alpha silhouette by a single straight color, discarding the
// source's own (irrelevant) RGB.
const fragShadowTint = fragPreamble + `
uniform sampler2D u_source;
uniform vec4 u_color;
void main() {
	float a = texture(u_source, v_uv).a;
	fragColor = finalColor(vec4(u_color.rgb, u_color.a * a), v_world);
}
`

// fragBlurH and fragBlurV back ProgBlurHorizontal/ProgBlurVertical: a
// 9-tap separable blur, operating on an already-premultiplied source
// (see fragTexture's comment) so the taps are summed before the
// ambient alpha/clip scale, never premultiplied twice. The sample
// direction has no corresponding uniform key (renderjob/offscreen.go
// only ever writes KeyBlurRadius for these two kinds), so it is baked
// into each kind's own fragment body instead.
const fragBlurBody = `
uniform sampler2D u_source;
uniform float u_blur_radius;

void main() {
	vec2 texel = 1.0 / vec2(textureSize(u_source, 0));
	float step_ = max(u_blur_radius, 0.0001) / 4.0;
	float weights[9] = float[](0.028, 0.066, 0.123, 0.180, 0.206, 0.180, 0.123, 0.066, 0.028);
	vec4 sum = vec4(0.0);
	for (int i = -4; i <= 4; i++) {
		vec2 offset = BLUR_DIR * texel * step_ * float(i);
		sum += texture(u_source, v_uv + offset) * weights[i + 4];
	}
	fragColor = finalPremultiplied(sum, v_world);
}
`

const fragBlurH = fragPreamble + "const vec2 BLUR_DIR = vec2(1.0, 0.0);\n" + fragBlurBody
const fragBlurV = fragPreamble + "const vec2 BLUR_DIR = vec2(0.0, 1.0);\n" + fragBlurBody

// fragCrossFade backs ProgCrossFade: linear interpolation between two
// premultiplied sources by u_progress.
const fragCrossFade = fragPreamble + `
uniform sampler2D u_source;
uniform sampler2D u_source2;
uniform float u_progress;
void main() {
	vec4 a = texture(u_source, v_uv);
	vec4 b = texture(u_source2, v_uv);
	fragColor = finalPremultiplied(mix(a, b, clamp(u_progress, 0.0, 1.0)), v_world);
}
`

// fragBlend backs ProgBlend: composites top over bottom using one of
// a handful of blend modes selected by u_mode, matching
// rendernode.BlendMode's ordinal values (Normal, Multiply, Screen,
// and a fallback treated as Normal).
const fragBlend = fragPreamble + `
uniform sampler2D u_source;
uniform sampler2D u_source2;
uniform int u_mode;
void main() {
	vec4 bottom = texture(u_source, v_uv);
	vec4 top = texture(u_source2, v_uv);
	vec3 blended;
	if (u_mode == 1) {
		blended = bottom.rgb * top.rgb;
	} else if (u_mode == 2) {
		blended = bottom.rgb + top.rgb - bottom.rgb * top.rgb;
	} else {
		blended = top.rgb;
	}
	vec4 straight = vec4(blended, top.a);
	fragColor = finalPremultiplied(vec4(straight.rgb * straight.a, straight.a) + bottom * (1.0 - straight.a), v_world);
}
`

// fragColorMatrix backs ProgColorMatrix: a 4x4 matrix plus offset
// applied to the source's unpremultiplied color, then re-
// premultiplied, since the matrix is defined over straight colors.
const fragColorMatrix = fragPreamble + `
uniform sampler2D u_source;
uniform mat4 u_matrix;
uniform vec4 u_matrix_offset;
void main() {
	vec4 premult = texture(u_source, v_uv);
	float a = max(premult.a, 0.0001);
	vec4 straight = vec4(premult.rgb / a, premult.a);
	vec4 transformed = u_matrix * straight + u_matrix_offset;
	transformed = clamp(transformed, 0.0, 1.0);
	fragColor = finalColor(transformed, v_world);
}
`

// fragText backs ProgText: samples a single-channel coverage value
// from the glyph atlas (rendernode.FormatR8) and tints it by the
// vertex color, except for a color-glyph sentinel run
// (rendernode.ColorGlyphSentinel), which this renderer draws as a
// plain white coverage glyph rather than decoding embedded color: the
// atlas backing glyph.Library is R8-only, so full-color emoji glyphs
// have no RGBA texel to sample here.
const fragText = fragPreamble + `
uniform sampler2D u_source;
void main() {
	float cov = texture(u_source, v_uv).r;
	vec4 straight = v_color.r < 0.0 ? vec4(1.0, 1.0, 1.0, cov) : vec4(v_color.rgb, v_color.a * cov);
	fragColor = finalColor(straight, v_world);
}
`

// combineShader implements renderjob.Programs.CombineShader for a
// user GLShader node's fragment snippet: wrap it in the shared vertex
// stage and fragment preamble so it sees the same uniform set and
// coordinate frame every built-in program does.
func combineShader(snippet string) (vertex, fragment string) {
	return vertexSrc, fragPreamble + snippet
}

// convVertexSrc and the conv* fragment sources back driver.Registry's
// three texture-upload conversion passes (RegisterConvSource).
// runConversion never writes Modelview/Projection for these programs
// (convMappingSpecs only carries u_source/u_alpha), so unlike every
// other program this one must not reference those uniforms: it derives
// its fullscreen-quad clip position straight from the UV fullscreenQuad
// already hands it, rather than from a_pos's pixel-space extent.
const convVertexSrc = `#version 330 core
layout(location = 0) in vec2 a_pos;
layout(location = 1) in vec2 a_uv;
out vec2 v_uv;
void main() {
	v_uv = a_uv;
	gl_Position = vec4(a_uv.x * 2.0 - 1.0, 1.0 - a_uv.y * 2.0, 0.0, 1.0);
}
`

// srgbToLinear approximates the sRGB EOTF with the common single-pow
// shortcut; driver.LoadTexture only runs this pass on a handful of
// infrequently-loaded textures (icons, user-supplied images), so the
// gamma-2.2 approximation's visible error is an acceptable trade for
// not shipping a full piecewise sRGB curve.
const convFragLinearize = `#version 330 core
in vec2 v_uv;
out vec4 fragColor;
uniform sampler2D u_source;
uniform float u_alpha;
void main() {
	vec4 c = texture(u_source, v_uv);
	fragColor = vec4(pow(c.rgb, vec3(2.2)), c.a) * u_alpha;
}
`

const convFragPremultiply = `#version 330 core
in vec2 v_uv;
out vec4 fragColor;
uniform sampler2D u_source;
uniform float u_alpha;
void main() {
	vec4 c = texture(u_source, v_uv);
	fragColor = vec4(c.rgb * c.a, c.a) * u_alpha;
}
`

const convFragLinearizePremultiply = `#version 330 core
in vec2 v_uv;
out vec4 fragColor;
uniform sampler2D u_source;
uniform float u_alpha;
void main() {
	vec4 c = texture(u_source, v_uv);
	vec3 lin = pow(c.rgb, vec3(2.2));
	fragColor = vec4(lin * c.a, c.a) * u_alpha;
}
`

package renderer2d

// Built-in GLSL 330 pipelines. Both share one vertex shader; the uniform
// transform carries projection (and, in camera mode, the view) while model
// transforms are already baked into the vertex positions CPU-side.

const vertexShaderSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
uniform mat4 uTransform;
out vec2 vUV;
out vec4 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const colorFragmentSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;
void main() {
    FragColor = vColor;
}
` + "\x00"

const textureFragmentSource = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = texture(uTex, vUV) * vColor;
}
` + "\x00"

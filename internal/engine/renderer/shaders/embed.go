// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms terrain, sphere and instanced vegetation vertices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades with the sun plus up to 32 point lights.
//
//go:embed scene.frag
var SceneFragmentShader string

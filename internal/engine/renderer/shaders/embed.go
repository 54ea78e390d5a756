// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CarVertexShader is the vertex shader for car bodies and wheels.
//
//go:embed car.vert
var CarVertexShader string

// CarFragmentShader is the fragment shader for car bodies and wheels.
//
//go:embed car.frag
var CarFragmentShader string

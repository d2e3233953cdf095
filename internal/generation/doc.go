// Package generation holds the material generation pipeline: the request
// validator, the provider capability interface, and the orchestrator that
// fans a validated request out into concurrent provider calls and assembles
// the resulting bundle. It serves as the boundary between the application
// core and external AI/LLM services.
package generation

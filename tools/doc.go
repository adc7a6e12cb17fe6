// Package tools defines the Tool interface for the agent, the uniform
// string-in/string-out contract every action implements, and the registry
// the loop dispatches actions through.
package tools

// Package ports defines the interfaces between the conversation core and
// its collaborators (durable session storage, reasoning backends), following
// Hexagonal Architecture principles. Adapters live under pkg/adapters.
package ports

/*
Package domain contains the core domain models for the Sereno engine.

It defines the fundamental entities of the guided conversation: the emotion
taxonomy value types, the session lifecycle states, the command vocabulary,
and the per-user session record. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - PrimaryEmotion / NormalizedEmotion: The closed emotion taxonomy and the
    result of normalizing free text against it.
  - SessionState: The lifecycle phase a user's session is in.
  - Session: The durable per-user record (state, current emotion, bounded
    history, free-form context).
  - Command: The directive vocabulary and its category classification.
*/
package domain

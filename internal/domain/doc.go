// Package domain contains the core business entities, value objects, and
// domain logic of the registry: members, their offerings, and references
// into the read-only lookup tables. It is independent of any specific
// infrastructure or delivery mechanism.
package domain

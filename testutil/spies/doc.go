// Package spies provides test doubles for the observability interfaces.
package spies

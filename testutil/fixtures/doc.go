// Package fixtures provides prebuilt events shared by the tests of several packages.
package fixtures

// Package mocks holds testify mocks for the interfaces consumed by the
// service and transport layers. They are maintained by hand in the layout
// mockery produces, so NewX(t) registers expectation checks on cleanup.
package mocks

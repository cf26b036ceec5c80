// Package mocks holds testify mocks of the ports interfaces, in the mockery
// expecter style.
package mocks

// Package types defines the result and reporting types shared by the
// snapshot and restore engines, the command layer and the console UI.
package types

// Package csg defines the constructive solid geometry tree used to describe
// a tray. The tree is a closed set of primitive and operator nodes; it is
// immutable once built and each child is owned by exactly one parent.
package csg

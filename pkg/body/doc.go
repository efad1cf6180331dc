// Package body builds the sculpted outer shell of a keycap.
//
// A keycap body is a three-section loft (the core) with a swept-arc dish
// (the scoop) cut from its top. [ApplyEdgeFinish] then rounds the rim where
// the dish meets the walls and chamfers the bottom edge.
//
// # Usage
//
//	b := spec.DefaultBody()
//	core := spec.DefaultSize().CoreSize()
//	blank, err := body.MakeBlank(b, core)
//	if err != nil {
//	    return err
//	}
//	shell, err := body.ApplyEdgeFinish(blank, b, spec.DefaultSize())
//
// Every dish must fully cover the top face of the core it cuts.
// [CheckScoopCoverage] verifies that before any cut is made.
package body

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Node connects two blocks with each other. Each node carries one pressure
// and one flow degree-of-freedom of the global system. Nodes are not mutated
// after setup.
type Node struct {
	Name    string // unique name; by convention "upstream:downstream"
	FlowDof int    // global flow degree-of-freedom
	PresDof int    // global pressure degree-of-freedom
}

// SetupDofs registers the flow and pressure variables of this node
func (o *Node) SetupDofs(d *DofHandler) {
	o.FlowDof = d.RegisterVariable("flow:" + o.Name)
	o.PresDof = d.RegisterVariable("pressure:" + o.Name)
}

package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a folio file may hold.
type fileRoot struct {
	Graphs  []*graphBlock  `hcl:"graph,block"`
	Innings []*inningBlock `hcl:"inning,block"`
}

type graphBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	CLIF        string `hcl:"clif"`
}

type inningBlock struct {
	Name   string       `hcl:"name,label"`
	Thesis string       `hcl:"thesis"`
	Domain string       `hcl:"domain,optional"`
	Moves  []*moveBlock `hcl:"move,block"`
}

type moveBlock struct {
	Rule      string          `hcl:"rule,label"`
	Arguments *argumentsBlock `hcl:"arguments,block"`
}

// argumentsBlock keeps its body undecoded; attributes are evaluated late.
type argumentsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

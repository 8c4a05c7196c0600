package graph

// HandleType tells whether an anchor emits or receives edges
type HandleType string

const (
	HandleSource HandleType = "source"
	HandleTarget HandleType = "target"
)

// HandleSide is where the renderer draws the anchor
type HandleSide string

const (
	SideTop    HandleSide = "top"
	SideBottom HandleSide = "bottom"
	SideLeft   HandleSide = "left"
	SideRight  HandleSide = "right"
)

// Decision outlet handle ids. The empty id is the default anchor.
const (
	HandleDefault = ""
	HandleTrue    = "true"
	HandleFalse   = "false"
)

// Handle is a named anchor point on a node
type Handle struct {
	ID   string     `json:"id,omitempty"`
	Type HandleType `json:"type"`
	Side HandleSide `json:"side"`
}

// HandleSet is the anchor layout shared by every node of one kind
type HandleSet struct {
	Kind    NodeKind `json:"kind"`
	Handles []Handle `json:"handles"`
}

var handleSets = map[NodeKind][]Handle{
	NodeKindStart: {
		{ID: HandleDefault, Type: HandleSource, Side: SideBottom},
	},
	NodeKindProcess: {
		{ID: HandleDefault, Type: HandleTarget, Side: SideTop},
		{ID: HandleDefault, Type: HandleSource, Side: SideBottom},
	},
	NodeKindDecision: {
		{ID: HandleDefault, Type: HandleTarget, Side: SideTop},
		{ID: HandleDefault, Type: HandleSource, Side: SideBottom},
		{ID: HandleTrue, Type: HandleSource, Side: SideRight},
		{ID: HandleFalse, Type: HandleSource, Side: SideLeft},
	},
	NodeKindEnd: {
		{ID: HandleDefault, Type: HandleTarget, Side: SideTop},
	},
}

// HandlesFor returns the handle set of a kind. Unknown kinds have no handles.
func HandlesFor(kind NodeKind) HandleSet {
	hs := handleSets[kind]
	out := make([]Handle, len(hs))
	copy(out, hs)
	return HandleSet{Kind: kind, Handles: out}
}

// Has reports whether the set exposes an anchor of the given type and id.
func (s HandleSet) Has(typ HandleType, id string) bool {
	for _, h := range s.Handles {
		if h.Type == typ && h.ID == id {
			return true
		}
	}
	return false
}

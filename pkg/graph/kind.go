package graph

// Kind discriminates the node variants.
type Kind string

const (
	KindFilter  Kind = "filter"
	KindUpdate  Kind = "update"
	KindCompute Kind = "compute"
	KindRun     Kind = "run"
	KindMulti   Kind = "multi"
	KindSingle  Kind = "single"
	KindSeq     Kind = "seq"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

package types

// KnowledgeType classifies how transferable a knowledge dependency is.
// A dependency concentrated in a single person is treated as tacit; knowledge
// spread across several people is mixed (partially documented or shared).
type KnowledgeType string

const (
	KnowledgeTypeTacit KnowledgeType = "tacit"
	KnowledgeTypeMixed KnowledgeType = "mixed"
)

// KnowledgeTypeFromStrength classifies a dependency by its strength.
func KnowledgeTypeFromStrength(dependencyStrength float64) KnowledgeType {
	if dependencyStrength > 0.7 {
		return KnowledgeTypeTacit
	}
	return KnowledgeTypeMixed
}

// String returns the string representation of the knowledge type
func (k KnowledgeType) String() string {
	return string(k)
}

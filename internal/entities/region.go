package entities

// Region is a level-gated area holding an ordered list of enemies
type Region struct {
	ID            string
	Name          string
	RequiredLevel int
	// Connections are the regions reachable from this one on the map
	Connections []string
	// Requires lists regions whose enemies must all be defeated first
	Requires   []string
	Enemies    []EnemyTemplate
	Background string
}

// Enemy returns the template with the given id
func (r *Region) Enemy(enemyID string) (*EnemyTemplate, bool) {
	for i := range r.Enemies {
		if r.Enemies[i].ID == enemyID {
			return &r.Enemies[i], true
		}
	}
	return nil, false
}

// Cleared reports whether every enemy in the region is in defeated
func (r *Region) Cleared(defeated map[string]bool) bool {
	for _, e := range r.Enemies {
		if !defeated[e.ID] {
			return false
		}
	}
	return true
}

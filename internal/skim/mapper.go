// Package skim converts raw node-level travel-time tables into
// zone-level skims.
package skim

// NodeZonePair is one row of the node-to-zone mapping table
type NodeZonePair struct {
	NodeID int32 `json:"node_id" db:"node_id"`
	ZoneID int32 `json:"zone_id" db:"zone_id"`
}

// NodeZoneMapper resolves network node IDs to zone IDs. The mapping is a
// partition: every node belongs to exactly one zone, a zone may contain
// many nodes.
type NodeZoneMapper struct {
	zoneByNode map[int32]int32
}

// NewNodeZoneMapper builds a mapper from (node_id, zone_id) pairs. If a
// node appears more than once the last pair wins.
func NewNodeZoneMapper(pairs []NodeZonePair) *NodeZoneMapper {
	zoneByNode := make(map[int32]int32, len(pairs))
	for _, p := range pairs {
		zoneByNode[p.NodeID] = p.ZoneID
	}
	return &NodeZoneMapper{zoneByNode: zoneByNode}
}

// Zone returns the zone for a node. A node absent from the mapping
// cannot be translated; callers drop rows referencing it.
func (m *NodeZoneMapper) Zone(nodeID int32) (int32, bool) {
	zone, ok := m.zoneByNode[nodeID]
	return zone, ok
}

// Len returns the number of mapped nodes
func (m *NodeZoneMapper) Len() int {
	return len(m.zoneByNode)
}

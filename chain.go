package fat16

import (
	"encoding/binary"

	"github.com/gofat16/fat16/checkpoint"
)

// ClusterChain is the ordered sequence of cluster indices backing a
// file's or sub-directory's allocation, first cluster first.
type ClusterChain []uint16

// fatEOF16 is the low end of the FAT16 end-of-chain marker range; any
// entry value at or above it terminates a chain (§4.3).
const fatEOF16 = 0xFFF0

// ResolveChain walks the in-memory FAT starting at firstCluster and
// returns the ordered list of clusters that make up the allocation. A
// cluster index that repeats before a terminator is reached is reported
// as ErrInvalidFormat (REDESIGN FLAG #6: the spec's original corruption
// check — rejecting only indices past the FAT's addressable capacity —
// misses in-range cycles; this resolver tracks visited clusters so a
// cycle is caught the moment it repeats, not after looping to the
// capacity bound).
func (v *Volume) ResolveChain(firstCluster uint16) (ClusterChain, error) {
	maxEntries := uint32(len(v.fat)) / 2
	if maxEntries == 0 || uint32(firstCluster) >= maxEntries {
		return nil, checkpoint.From(ErrInvalidFormat)
	}

	visited := make(map[uint16]bool, 16)
	chain := make(ClusterChain, 0, 16)

	cluster := firstCluster
	for {
		if visited[cluster] {
			return nil, checkpoint.From(ErrInvalidFormat)
		}
		visited[cluster] = true
		chain = append(chain, cluster)

		next := binary.LittleEndian.Uint16(v.fat[uint32(cluster)*2 : uint32(cluster)*2+2])
		if next >= fatEOF16 {
			return chain, nil
		}
		if uint32(next) >= maxEntries {
			return nil, checkpoint.From(ErrInvalidFormat)
		}
		cluster = next
	}
}

// clusterFirstSector returns the first sector number of cluster in the
// data area. Cluster 2 is the first valid data cluster.
func (v *Volume) clusterFirstSector(cluster uint16) uint32 {
	return v.dataStart + uint32(v.bpb.SectorsPerCluster)*(uint32(cluster)-2)
}

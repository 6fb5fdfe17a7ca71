package raster

// SortRange restores submission order in the buckets of tiles [start, end).
// The binner's atomic interleaving scatters node indices arbitrarily; after
// this stage each bucket holds its indices in ascending order, which is
// exactly original draw order. The painter's back-to-front compositing
// depends on it.
//
// Insertion sort: buckets hold at most BucketCap entries, are often nearly
// sorted already (low contention preserves submission order), and the sort
// must be in-place and allocation-free.
func (ts *TileSet) SortRange(start, end int) {
	for tile := start; tile < end; tile++ {
		b := ts.Bucket(tile)
		for i := 1; i < len(b); i++ {
			v := b[i]
			j := i - 1
			for j >= 0 && b[j] > v {
				b[j+1] = b[j]
				j--
			}
			b[j+1] = v
		}
	}
}

package engine

// offset is a block position relative to the shape anchor.
type offset struct {
	column int
	row    int
}

// geometry holds the block offsets of every kind in every orientation.
// Block order matters: bottomBlocks refers to blocks by index.
var geometry = [kindCount][orientationCount][BlocksPerShape]offset{
	KindSquare: {
		Orientation0:   {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Orientation90:  {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Orientation180: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Orientation270: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	KindT: {
		Orientation0:   {{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		Orientation90:  {{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		Orientation180: {{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		Orientation270: {{1, 0}, {1, 1}, {1, 2}, {0, 1}},
	},
	KindLine: {
		Orientation0:   {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		Orientation90:  {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		Orientation180: {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		Orientation270: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	},
	KindL: {
		Orientation0:   {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
		Orientation90:  {{1, 1}, {0, 1}, {-1, 1}, {-1, 2}},
		Orientation180: {{0, 2}, {0, 1}, {0, 0}, {-1, 0}},
		Orientation270: {{-1, 1}, {0, 1}, {1, 1}, {1, 0}},
	},
	KindJ: {
		Orientation0:   {{1, 0}, {1, 1}, {1, 2}, {0, 2}},
		Orientation90:  {{2, 1}, {1, 1}, {0, 1}, {0, 0}},
		Orientation180: {{0, 2}, {0, 1}, {0, 0}, {1, 0}},
		Orientation270: {{0, 0}, {1, 0}, {2, 0}, {2, 1}},
	},
	KindS: {
		Orientation0:   {{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		Orientation90:  {{2, 0}, {1, 0}, {1, 1}, {0, 1}},
		Orientation180: {{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		Orientation270: {{2, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
	KindZ: {
		Orientation0:   {{1, 0}, {1, 1}, {0, 1}, {0, 2}},
		Orientation90:  {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		Orientation180: {{1, 0}, {1, 1}, {0, 1}, {0, 2}},
		Orientation270: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	},
}

// bottomBlocks lists, per kind and orientation, the indices of the blocks that
// face down: nothing of the same shape sits directly beneath them.
var bottomBlocks = [kindCount][orientationCount][]int{
	KindSquare: {
		Orientation0:   {2, 3},
		Orientation90:  {2, 3},
		Orientation180: {2, 3},
		Orientation270: {2, 3},
	},
	KindT: {
		Orientation0:   {0, 1, 2},
		Orientation90:  {2, 3},
		Orientation180: {3, 0, 2},
		Orientation270: {2, 3},
	},
	KindLine: {
		Orientation0:   {3},
		Orientation90:  {0, 1, 2, 3},
		Orientation180: {3},
		Orientation270: {0, 1, 2, 3},
	},
	KindL: {
		Orientation0:   {2, 3},
		Orientation90:  {0, 1, 3},
		Orientation180: {0, 3},
		Orientation270: {0, 1, 2},
	},
	KindJ: {
		Orientation0:   {2, 3},
		Orientation90:  {0, 1, 2},
		Orientation180: {0, 3},
		Orientation270: {0, 1, 3},
	},
	KindS: {
		Orientation0:   {1, 3},
		Orientation90:  {0, 2, 3},
		Orientation180: {1, 3},
		Orientation270: {0, 2, 3},
	},
	KindZ: {
		Orientation0:   {1, 3},
		Orientation90:  {0, 2, 3},
		Orientation180: {1, 3},
		Orientation270: {0, 2, 3},
	},
}

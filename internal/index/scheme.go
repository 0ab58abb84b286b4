package index

var (
	bPost    = []byte("post")     // postID -> record JSON
	bIdxDate = []byte("idx_date") // dateKey+postID -> 1
)

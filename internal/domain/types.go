package domain

type SortMode string

const (
	SortByFound SortMode = "found"
	SortBySize  SortMode = "size"
	SortByPath  SortMode = "path"
)

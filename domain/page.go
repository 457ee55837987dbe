package domain

// PageRequest is one windowed query over a collection.
type PageRequest[F any] struct {
	Page     int
	PageSize int
	Filters  F
}

// Page is the uniform pagination response shape.
type Page[T any] struct {
	Records  []T
	Total    int64
	Page     int
	PageSize int
}

package services

import "context"

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest, gen uint64, out chan<- Event)
}

type Sizer interface {
	Compute(ctx context.Context, path string, gen uint64, out chan<- Event)
}

type Deleter interface {
	Delete(ctx context.Context, req DeleteRequest, gen uint64, out chan<- Event)
}

package iorepo

// Option is a function that modifies a repository.
type Option func(*repoOptions)

type repoOptions struct {
	progress func(rows int)
}

// OptProgress sets a callback that is called after every upsert statement
// with the number of rows it sent. Rows reported before a failure are
// rolled back together with the rest of the call.
func OptProgress(f func(rows int)) Option {
	return func(o *repoOptions) {
		o.progress = f
	}
}

func newRepoOptions(opts []Option) repoOptions {
	var res repoOptions
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

package pool

import (
	"io"
	"runtime"
	"sync"
)

// command is used to trigger our latent workers to evaluate a function once.
type command struct {
	// This is the index we evaluate our function at
	i int
	f func(int)
}

// worker starts up a new worker, listening to commands, and signaling each completion.
func worker(commands <-chan command, done chan<- struct{}) {
	for c := range commands {
		c.f(c.i)
		done <- struct{}{}
	}
}

// Pool represents a pool of workers, used for parallelizing independent
// operations, such as encrypting the characters of a message.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// The common channel used to send commands to the workers.
	//
	// This effectively makes a work stealing pool.
	commands chan command
	// The channel used to signal a finished task
	done chan struct{}
	// This holds the number of workers we've created
	workerCount int
	// Serializes callers, so that every completion on done belongs to the current run.
	mu sync.Mutex
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	var p Pool

	if count <= 0 {
		count = runtime.NumCPU()
	}

	p.commands = make(chan command)
	p.workerCount = count
	p.done = make(chan struct{})

	for i := 0; i < count; i++ {
		go worker(p.commands, p.done)
	}

	return &p
}

// TearDown cleanly tears down a pool, closing channels, etc.
func (p *Pool) TearDown() {
	close(p.commands)
}

// Workers returns the number of workers in the pool, or 0 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workerCount
}

// run calls f count times, passing in indices from 0..count-1.
func (p *Pool) run(count int, f func(int)) {
	if p == nil {
		for i := 0; i < count; i++ {
			f(i)
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cmdI, finished := 0, 0
	for cmdI < count {
		cmd := command{
			i: cmdI,
			f: f,
		}
		// We won't be able to send all the commands without blocking, so we make
		// sure to interleave picking off the results of workers to free them up
		// to receive our commands
		select {
		case p.commands <- cmd:
			cmdI++
		case <-p.done:
			finished++
		}
	}
	// Every worker signals each completion, so none is left blocked once we return.
	for finished < count {
		<-p.done
		finished++
	}
}

// Parallelize calls f count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
// Every index is evaluated; if some calls fail, the error of the smallest
// failing index is returned, and the results are discarded.
func Parallelize[T any](p *Pool, count int, f func(int) (T, error)) ([]T, error) {
	results := make([]T, count)
	errs := make([]error, count)
	p.run(count, func(i int) {
		results[i], errs[i] = f(i)
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
//
// Wrapping a *LockedReader again returns it unchanged.
func NewLockedReader(r io.Reader) *LockedReader {
	if lr, ok := r.(*LockedReader); ok {
		return lr
	}
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// The behavior is to return the same output as the underlying reader. The difference
// is that it's safe to call this function concurrently.
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}

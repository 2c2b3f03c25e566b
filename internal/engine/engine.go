// Package engine drives the three-stage concurrent chunk pipeline: a single
// reader goroutine splits a stream into chunks, a pool of worker goroutines
// runs each chunk through a Pipeline, and a single writer goroutine restores
// chunk order and writes the result. Content-hash computation lives outside
// the engine, one layer up.
//
// Grounded on original_source's worker/mod.rs three-thread architecture
// (reader -> rayon executor -> writer), translated from flume channels and
// thread::spawn to buffered Go channels and goroutines, and from a
// per-process cancellation-by-panic model to context.Context cancellation.
package engine

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// Mode selects which direction a Run call processes the stream in.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

// Pipeline is the per-chunk transform the engine drives. It is satisfied by
// *internal/pipeline.Pipeline; the engine depends only on this narrow
// interface so it can be exercised with a fake pipeline in tests.
type Pipeline interface {
	EncryptChunk(plaintext []byte) ([]byte, error)
	DecryptChunk(encoded []byte) ([]byte, error)
}

type chunkTask struct {
	index uint64
	data  []byte
}

type chunkResult struct {
	index uint64
	data  []byte
	err   error
}

// Run processes r into w through pl using mode, splitting the stream into
// chunks of at most chunkSize bytes (encrypt mode) and fanning out work
// across workers goroutines. It returns as soon as the first stage error is
// observed; all goroutines are stopped via ctx cancellation before Run
// returns. Content-hash verification is the orchestrator's job, run as a
// separate pass once the streamed bytes have landed on disk.
func Run(ctx context.Context, mode Mode, pl Pipeline, r io.Reader, w io.Writer, chunkSize, workers int) error {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	channelSize := workers * 2
	tasks := make(chan chunkTask, channelSize)
	results := make(chan chunkResult, channelSize)

	var errOnce sync.Once
	var firstErr error
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	var readerWG sync.WaitGroup
	readerWG.Add(1)
	go func() {
		defer readerWG.Done()
		defer close(tasks)
		if err := readChunks(ctx, mode, r, chunkSize, tasks); err != nil {
			fail(err)
		}
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			runWorker(ctx, mode, pl, tasks, results)
		}()
	}
	go func() {
		workerWG.Wait()
		close(results)
	}()

	var writerWG sync.WaitGroup
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		if err := writeChunks(ctx, w, results); err != nil {
			fail(err)
		}
	}()

	readerWG.Wait()
	writerWG.Wait()
	workerWG.Wait()

	return firstErr
}

func readChunks(ctx context.Context, mode Mode, r io.Reader, chunkSize int, tasks chan<- chunkTask) error {
	var index uint64
	switch mode {
	case Encrypt:
		buf := make([]byte, chunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				if !send(ctx, tasks, chunkTask{index: index, data: data}) {
					return ctx.Err()
				}
				index++
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("engine: %w: %v", swerr.ErrIO, err)
			}
		}
	case Decrypt:
		for {
			var lenBuf [4]byte
			_, err := io.ReadFull(r, lenBuf[:])
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("engine: %w: failed to read chunk length: %v", swerr.ErrIO, err)
			}
			chunkLen := binary.BigEndian.Uint32(lenBuf[:])
			data := make([]byte, chunkLen)
			if _, err := io.ReadFull(r, data); err != nil {
				return fmt.Errorf("engine: %w: failed to read chunk body: %v", swerr.ErrIO, err)
			}
			if !send(ctx, tasks, chunkTask{index: index, data: data}) {
				return ctx.Err()
			}
			index++
		}
	default:
		return fmt.Errorf("engine: unknown mode %d", mode)
	}
}

func send(ctx context.Context, tasks chan<- chunkTask, t chunkTask) bool {
	select {
	case tasks <- t:
		return true
	case <-ctx.Done():
		return false
	}
}

func runWorker(ctx context.Context, mode Mode, pl Pipeline, tasks <-chan chunkTask, results chan<- chunkResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			var out []byte
			var err error
			if mode == Encrypt {
				out, err = pl.EncryptChunk(t.data)
			} else {
				out, err = pl.DecryptChunk(t.data)
			}
			select {
			case results <- chunkResult{index: t.index, data: out, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func writeChunks(ctx context.Context, w io.Writer, results <-chan chunkResult) error {
	buffer := newReorderBuffer(0)

	writeReady := func(ready []chunkResult) error {
		for _, r := range ready {
			if r.err != nil {
				return r.err
			}
			if _, err := w.Write(r.data); err != nil {
				return fmt.Errorf("engine: %w: %v", swerr.ErrIO, err)
			}
		}
		return nil
	}

loop:
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-results:
			if !ok {
				break loop
			}
			ready := buffer.add(r)
			if err := writeReady(ready); err != nil {
				return err
			}
		}
	}

	if remaining := buffer.flush(); len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("engine: %d chunk result(s) left after a chunk index that was never produced", len(remaining))
	}
	return nil
}

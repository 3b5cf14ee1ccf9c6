// Package processor chunks batches of texts and directories of text files.
//
// Work is spread over a bounded worker pool (errgroup plus a semaphore) and
// every run gets a UUID that tags its log lines and statistics:
//
//	p := processor.New(chunker.New(), logger)
//	result, err := p.ProcessPath(ctx, "/notes", &processor.Config{Recursive: true})
//	if err != nil {
//	    return err
//	}
//	for _, doc := range result.Documents {
//	    fmt.Println(doc.Path, len(doc.Chunks))
//	}
//
// A file that cannot be read or is not UTF-8 is recorded in
// Statistics.ErrorMessages and the run continues. Empty files are skipped.
// Each document is checked with chunker.VerifyCoverage and Lossless records
// the outcome.
//
// RunLock lets callers such as the MCP server reject overlapping directory
// runs instead of queueing them.
//
// Nothing is cached or stored. Every run chunks its input from scratch.
package processor

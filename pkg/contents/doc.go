// Package contents persists the document text outside the process.
//
// A [Sink] receives [Contents] after each edit; a [Source] loads the last
// stored contents back. Backends:
//
//   - [MemorySink]: keeps every write in memory (tests, embedding)
//   - [FileSink]: the document file on disk, replaced atomically
//   - [RedisSink]: one JSON record per document ID in Redis
//   - [MongoSink]: one MongoDB document per document ID, upserted
//
// [Observer] connects a sink to a document.Store. It forwards only changes
// made through the editor; text that came from outside (a file load, a clear)
// is already where it came from and is not written back.
package contents

// Package transcribe turns audio assets into timed transcripts.
//
// Two Backend variants exist behind one interface, selected by
// configuration:
//
//   - WhisperBackend runs a local speech model synchronously through an
//     external runner process. Model resolution happens once per instance
//     and a failed load is fatal for that instance.
//   - CloudBackend drives an asynchronous remote job: upload, submit, poll
//     on a fixed interval with a bounded total wait, fetch the result
//     document, and convert its item list into segments (one per word by
//     default, sentence grouping optionally).
//
// Both variants normalize their raw output against the segment ordering
// invariant before returning: the local variant rejects violations, the
// cloud variant drops overlapping items and logs the repair.
package transcribe

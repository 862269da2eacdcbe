// Package event defines the internal representation of device interaction
// events: the Raw record, the internal event-type enum, and the mapping
// from external collector codes onto that enum.
//
// The rest of the module operates exclusively on the internal enum. External
// event codes (usage-stats codes from the system source, accessibility codes
// from the capture source) are translated at the ingestion boundary; codes
// with no internal counterpart are dropped there, never surfaced as errors.
//
// Ordering: timestamps across sources are only roughly ordered, so every
// stage that cares about order sorts explicitly. Sorting is stable on
// (Timestamp, Seq), where Seq is the monotonic ingest sequence. Two events
// with equal timestamps always replay in ingest order.
package event

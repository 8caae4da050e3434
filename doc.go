/*
Package refdata implements an in-process record store for small, mostly-static
reference data (lookup tables, enumerations, fixtures) that wants database-like
querying ergonomics without an external database.

We implement:

1. Coercions, a registry of field type tags (string, integer, float, boolean,
date, time, datetime) mapping to pure conversion functions.

2. Schemas, per-record-type field declarations carrying a type tag and an
optional default value.

3. Records, attribute bags built through a schema, which coerces typed values
and fills in defaults.

4. Collections, the ordered, identifier-indexed sequences of records for one
record type, with automatic numeric identifier assignment.

5. Scopes, immutable chainable views over a collection supporting equality,
set-membership and range filters plus first/last/count/find terminals.

# Technical Details

**Registry.**
Collections live in an explicit Registry owned by the application and keyed by
record-type name. There is no hidden global state; pass the registry (or a
collection taken from it) to whatever needs access.

**Identifiers.**
A record inserted without an identity gets 1 + the maximum existing numeric
identity (1 for an empty collection). The identifier index is keyed by the
stringified identity, so integer-ish identities of different Go types resolve
to the same record.

**Concurrency.**
Operations are plain in-memory computations with no internal locking. Callers
must serialize mutations (Insert, ReplaceAll, DeleteAll) against each other
and against reads; reads are safe to run concurrently with other reads.

**Persistence.**
None in this package. The fixtures subpackage loads YAML rows into a
collection, and the snapshot subpackage saves/restores a whole registry to a
Bolt file; both go through ReplaceAll.
*/
package refdata

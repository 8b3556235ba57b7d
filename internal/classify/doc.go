// Package classify maps module names to a device-type / infrastructure-
// bucket pair via an ordered keyword rule table. The table is pure data:
// first match wins, and the check order guarantees no module name matches
// more than one bucket.
package classify

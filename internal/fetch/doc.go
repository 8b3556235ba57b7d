// Package fetch obtains module source texts for a collection.
//
// Two fetchers exist: one lists a collection repository's plugins/modules
// directory through the GitHub contents API and downloads each module
// file, the other reads the same layout from a local directory tree. Both
// produce an ordered sequence of module documents; the analysis core
// assumes UTF-8 decodable text and performs no further validation of its
// provenance.
package fetch

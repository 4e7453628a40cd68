// Package hpoid defines the small identifier types shared by every layer of
// the ontology: term ids (HP:nnnnnnn), gene ids, and disease ids. None of
// these types carry any behavior beyond parsing, formatting, and ordering;
// they exist so that every other package can depend on a single, cheap,
// comparable representation instead of passing strings around.
package hpoid

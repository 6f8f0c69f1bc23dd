// Package config parses the YAML gateway definition (device identity, link
// locators, sensor list with schema and change-detection policy) and
// populates the Thing aggregate from it.
package config

package model

// Package model defines domain data structures shared across the bot: media
// metadata from the extraction engine, user-facing format choices, and
// download results. Plain values with no behavior beyond classification.

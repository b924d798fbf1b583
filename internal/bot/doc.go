package bot

// Package bot is the dialogue layer: it maps inbound Telegram updates
// (URLs, format-selection callbacks, /start) onto the session store and the
// download pipeline, and renders outcomes back as messages, keyboards and
// status edits. All texts are Russian.

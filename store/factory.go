package store

import "backend/config"

// New picks the backing medium: the remote KV blob when fully
// configured, otherwise the local JSON file. The remote store always
// wraps the file store as its fallback.
func New(cfg *config.Config) Store {
	file := NewFileStore(cfg.DBFile)
	if cfg.RemoteStoreConfigured() {
		return NewRemoteStore(cfg.KVRestURL, cfg.KVRestToken, cfg.KVKey, file)
	}
	return file
}

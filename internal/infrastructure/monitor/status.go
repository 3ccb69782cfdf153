package monitor

import "time"

type Status struct {
	Backend          string    `json:"backend"`
	RemoteConfigured bool      `json:"remote_configured"`
	Remote           bool      `json:"remote"`
	RedisConfigured  bool      `json:"redis_configured"`
	Redis            bool      `json:"redis"`
	Local            bool      `json:"local"`
	LocalKeys        int       `json:"local_keys"`
	LocalReadTxs     int       `json:"local_read_txs"`
	LocalOpenTxs     int       `json:"local_open_txs"`
	LastCheck        time.Time `json:"last_check"`
}

// Healthy is true when the local store works and every configured dependency answers.
func (s Status) Healthy() bool {
	if !s.Local {
		return false
	}
	if s.RemoteConfigured && !s.Remote {
		return false
	}
	if s.RedisConfigured && !s.Redis {
		return false
	}
	return true
}

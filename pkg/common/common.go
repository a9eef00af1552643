package common

const (
	KEY_LAST_SENT_SIGNAL    = "signal_sent:%s:%s:%d"
	KEY_FETCH_FAILURE_NOTED = "fetch_failure_noted:%s"
	KEY_MAYER_READING       = "mayer_reading"
)

const (
	ASSET_BITCOIN = "bitcoin"
	VS_CURRENCY   = "usd"
)

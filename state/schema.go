package state

import "strings"

var (
	strZeroBytes32 = strings.Repeat("0", 64)
	strZeroBytes20 = strings.Repeat("0", 40)

	// one row per attested deposit id; rows are written once and never updated
	signedDepositTable = `CREATE TABLE IF NOT EXISTS signed_deposit (
		requestId CHAR(64) PRIMARY KEY NOT NULL,
		originChainId BIGINT UNSIGNED NOT NULL,
		originTxHash CHAR(64) NOT NULL,
		tempoRecipient CHAR(40) NOT NULL,
		amount BIGINT UNSIGNED NOT NULL,
		signatureTxHash CHAR(64) NOT NULL,
		signedAt BIGINT NOT NULL,
		CONSTRAINT chk_requestId CHECK (requestId != '` + strZeroBytes32 + `'),
		CONSTRAINT chk_originTxHash CHECK (originTxHash != '` + strZeroBytes32 + `'),
		CONSTRAINT chk_tempoRecipient CHECK (tempoRecipient != '` + strZeroBytes20 + `'),
		CONSTRAINT chk_amount CHECK (amount > 0)
	);`

	// finalization flags live apart from the deposit rows so those stay immutable
	finalizedDepositTable = `CREATE TABLE IF NOT EXISTS finalized_deposit (
		requestId CHAR(64) PRIMARY KEY NOT NULL,
		finalizedAt BIGINT NOT NULL,
		CONSTRAINT chk_requestId CHECK (requestId != '` + strZeroBytes32 + `')
	);`

	// unlockTxHash is NULL until an unlock submission lands on the origin chain
	processedBurnTable = `CREATE TABLE IF NOT EXISTS processed_burn (
		burnId CHAR(64) PRIMARY KEY NOT NULL,
		originChainId BIGINT UNSIGNED NOT NULL,
		originRecipient CHAR(40) NOT NULL,
		amount BIGINT UNSIGNED NOT NULL,
		tempoBlockNumber BIGINT UNSIGNED NOT NULL,
		unlockTxHash CHAR(64),
		processedAt BIGINT NOT NULL,
		CONSTRAINT chk_burnId CHECK (burnId != '` + strZeroBytes32 + `'),
		CONSTRAINT chk_unlockTxHash CHECK (unlockTxHash IS NULL OR unlockTxHash != '` + strZeroBytes32 + `'),
		CONSTRAINT chk_originRecipient CHECK (originRecipient != '` + strZeroBytes20 + `'),
		CONSTRAINT chk_amount CHECK (amount > 0)
	);`

	// last observed block per origin chain; chainId 0 is reserved for the
	// Tempo-wide counter. Values are last-write-wins so a reorg rollback
	// may move them backwards.
	watermarkTable = `CREATE TABLE IF NOT EXISTS watermark (
		chainId BIGINT UNSIGNED PRIMARY KEY NOT NULL,
		blockNumber BIGINT UNSIGNED NOT NULL
	);`
)

package contract

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

func singletonKey(prefix byte) string {
	return string([]byte{prefix})
}

func idKey(prefix byte, id uint64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

func configKey() string { return singletonKey(kConfig) }
func submissionIndexKey() string { return singletonKey(kSubmissionIndex) }
func pendingQueueKey() string { return singletonKey(kPendingAuctions) }
func liveAuctionKey() string { return singletonKey(kLiveAuction) }
func assetAuctionKey() string { return singletonKey(kAssetAuction) }
func ownershipTransferKey() string { return singletonKey(kOwnershipTransfer) }
func pendingMintKey() string { return singletonKey(kPendingMint) }

// submissionKey addresses a submission record by its id.
func submissionKey(id uint64) string {
	return idKey(kSubmission, id)
}

// pendingAuctionKey addresses one queue slot by its monotonically increasing sequence.
func pendingAuctionKey(seq uint64) string {
	return idKey(kPendingAuctions, seq)
}

// mintedTokenKey addresses a mint record by the collection's token id.
func mintedTokenKey(tokenID uint64) string {
	return idKey(kMintedToken, tokenID)
}

package cryptonews

// Category and sort values are provider-defined tokens. They are forwarded
// to the API unchanged; the constants below are the common ones only.

type BitcoinistCategory string

type CoinDeskCategory string

type CointelegraphCategory string

type CryptoDailyCategory string

type CryptoNewsCategory string

type DecryptCategory string

// DecryptSort orders Decrypt listings.
type DecryptSort string

const (
	BitcoinistCategoryBitcoin BitcoinistCategory = "BITCOIN"

	CoinDeskCategoryMarkets CoinDeskCategory = "MARKETS"

	CointelegraphCategoryBitcoin    CointelegraphCategory = "BITCOIN"
	CointelegraphCategoryBlockchain CointelegraphCategory = "BLOCKCHAIN"

	CryptoDailyCategoryDefi CryptoDailyCategory = "DEFI"

	CryptoNewsCategoryAltcoin CryptoNewsCategory = "ALTCOIN"

	DecryptCategoryNews DecryptCategory = "NEWS"
)

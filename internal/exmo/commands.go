package exmo

// Command names accepted by Dispatcher.Invoke. The exchange exposes more
// endpoints than these; only the ones listed here can be dispatched.
const (
	// Public API
	CmdTrades       = "trades"
	CmdOrderBook    = "order_book"
	CmdTicker       = "ticker"
	CmdPairSettings = "pair_settings"
	CmdCurrency     = "currency"
	// Authenticated API
	CmdUserInfo            = "user_info"
	CmdOrderCreate         = "order_create"
	CmdOrderCancel         = "order_cancel"
	CmdUserOpenOrders      = "user_open_orders"
	CmdUserTrades          = "user_trades"
	CmdUserCancelledOrders = "user_cancelled_orders"
	CmdOrderTrades         = "order_trades"
	CmdDepositAddress      = "trade_deposit_address"
	// Wallet API
	CmdWalletHistory = "wallet_history"
)

type commandSpec struct {
	authenticated bool
}

// commands is the closed registry of dispatchable operations. A name absent
// from this map is rejected with ErrUnknownCommand rather than forwarded.
var commands = map[string]commandSpec{
	CmdTrades:              {authenticated: false},
	CmdOrderBook:           {authenticated: false},
	CmdTicker:              {authenticated: false},
	CmdPairSettings:        {authenticated: false},
	CmdCurrency:            {authenticated: false},
	CmdUserInfo:            {authenticated: true},
	CmdOrderCreate:         {authenticated: true},
	CmdOrderCancel:         {authenticated: true},
	CmdUserOpenOrders:      {authenticated: true},
	CmdUserTrades:          {authenticated: true},
	CmdUserCancelledOrders: {authenticated: true},
	CmdOrderTrades:         {authenticated: true},
	CmdDepositAddress:      {authenticated: true},
	CmdWalletHistory:       {authenticated: true},
}

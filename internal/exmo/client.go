package exmo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// ClientInterface defines the typed surface over the exchange API. One
// method per registry command; call sites never build raw command strings.
type ClientInterface interface {
	Trades(ctx context.Context, pair string) (map[string][]Trade, error)
	OrderBook(ctx context.Context, pair string, limit int) (map[string]OrderBook, error)
	Ticker(ctx context.Context) (map[string]Ticker, error)
	PairSettings(ctx context.Context) (map[string]PairSettings, error)
	Currency(ctx context.Context) ([]string, error)
	UserInfo(ctx context.Context) (*UserInfo, error)
	OrderCreate(ctx context.Context, req OrderCreateRequest) (*OrderCreateResult, error)
	OrderCancel(ctx context.Context, orderID string) error
	UserOpenOrders(ctx context.Context) (map[string][]OpenOrder, error)
	UserTrades(ctx context.Context, pair string) (map[string][]UserTrade, error)
	UserCancelledOrders(ctx context.Context) ([]CancelledOrder, error)
	OrderTrades(ctx context.Context, orderID string) (*OrderTradesResult, error)
	DepositAddress(ctx context.Context) (map[string]string, error)
	WalletHistory(ctx context.Context, date string) (*WalletHistory, error)
}

// Client is a thin façade over a Dispatcher with a credential pair bound at
// construction. A nil credential pair restricts the client to public
// commands; authenticated calls then fail with ErrMissingCredentials.
type Client struct {
	dispatcher *Dispatcher
	creds      *Credentials
}

var _ ClientInterface = (*Client)(nil)

// NewClient binds a dispatcher and an optional credential pair.
func NewClient(dispatcher *Dispatcher, creds *Credentials) *Client {
	return &Client{dispatcher: dispatcher, creds: creds}
}

// Trade is a single public trade on a pair.
type Trade struct {
	TradeID  json.Number     `json:"trade_id"`
	Type     string          `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Date     int64           `json:"date"`
}

// OrderBook is the book snapshot for one pair.
type OrderBook struct {
	AskQuantity decimal.Decimal     `json:"ask_quantity"`
	AskAmount   decimal.Decimal     `json:"ask_amount"`
	AskTop      decimal.Decimal     `json:"ask_top"`
	BidQuantity decimal.Decimal     `json:"bid_quantity"`
	BidAmount   decimal.Decimal     `json:"bid_amount"`
	BidTop      decimal.Decimal     `json:"bid_top"`
	Ask         [][]decimal.Decimal `json:"ask"`
	Bid         [][]decimal.Decimal `json:"bid"`
}

// Ticker is the 24h statistics for one pair.
type Ticker struct {
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	LastTrade decimal.Decimal `json:"last_trade"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Avg       decimal.Decimal `json:"avg"`
	Volume    decimal.Decimal `json:"vol"`
	VolCurr   decimal.Decimal `json:"vol_curr"`
	Updated   int64           `json:"updated"`
}

// PairSettings holds the exchange-enforced order limits for one pair.
type PairSettings struct {
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
	MinPrice    decimal.Decimal `json:"min_price"`
	MaxPrice    decimal.Decimal `json:"max_price"`
	MinAmount   decimal.Decimal `json:"min_amount"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
}

// UserInfo is the authenticated account snapshot.
type UserInfo struct {
	UID        json.Number       `json:"uid"`
	ServerDate int64             `json:"server_date"`
	Balances   map[string]string `json:"balances"`
	Reserved   map[string]string `json:"reserved"`
}

// OrderCreateRequest carries the parameters of a new order.
type OrderCreateRequest struct {
	Pair     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	// Type is one of buy, sell, market_buy, market_sell, market_buy_total,
	// market_sell_total.
	Type string
}

// OrderCreateResult is the exchange's acknowledgement of a created order.
// The order identifier is kept opaque; it may exceed safe-integer precision.
type OrderCreateResult struct {
	Result  bool        `json:"result"`
	Error   string      `json:"error"`
	OrderID json.Number `json:"order_id"`
}

// OpenOrder is one entry of the authenticated open-orders listing. Created
// is the creation time in epoch seconds, as the exchange transmits it.
type OpenOrder struct {
	OrderID  string          `json:"order_id"`
	Created  string          `json:"created"`
	Type     string          `json:"type"`
	Pair     string          `json:"pair"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// UserTrade is one fill from the authenticated trade history.
type UserTrade struct {
	TradeID  json.Number     `json:"trade_id"`
	Date     int64           `json:"date"`
	Type     string          `json:"type"`
	Pair     string          `json:"pair"`
	OrderID  json.Number     `json:"order_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Amount   decimal.Decimal `json:"amount"`
}

// CancelledOrder is one entry of the cancelled-orders history.
type CancelledOrder struct {
	Date     int64           `json:"date"`
	OrderID  json.Number     `json:"order_id"`
	Type     string          `json:"order_type"`
	Pair     string          `json:"pair"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// OrderTradeEntry is one fill attributed to a specific order.
type OrderTradeEntry struct {
	TradeID  json.Number     `json:"trade_id"`
	Date     int64           `json:"date"`
	Type     string          `json:"type"`
	Pair     string          `json:"pair"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Amount   decimal.Decimal `json:"amount"`
}

// OrderTradesResult is the fill history of one order.
type OrderTradesResult struct {
	Type        string            `json:"type"`
	InCurrency  string            `json:"in_currency"`
	InAmount    decimal.Decimal   `json:"in_amount"`
	OutCurrency string            `json:"out_currency"`
	OutAmount   decimal.Decimal   `json:"out_amount"`
	Trades      []OrderTradeEntry `json:"trades"`
}

// WalletHistoryItem is one wallet movement.
type WalletHistoryItem struct {
	DT       int64           `json:"dt"`
	Type     string          `json:"type"`
	Currency string          `json:"curr"`
	Status   string          `json:"status"`
	Provider string          `json:"provider"`
	Amount   decimal.Decimal `json:"amount"`
	Account  string          `json:"account"`
}

// WalletHistory is the wallet movement listing for one day.
type WalletHistory struct {
	Result  bool                `json:"result"`
	Begin   json.Number         `json:"begin"`
	End     json.Number         `json:"end"`
	History []WalletHistoryItem `json:"history"`
}

func (c *Client) invoke(ctx context.Context, command string, params url.Values, out any) error {
	payload, err := c.dispatcher.Invoke(ctx, command, params, c.creds)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &ResponseParseError{Command: command, Err: err}
	}
	return nil
}

// Trades lists the latest public trades for a pair.
func (c *Client) Trades(ctx context.Context, pair string) (map[string][]Trade, error) {
	out := make(map[string][]Trade)
	err := c.invoke(ctx, CmdTrades, url.Values{"pair": {pair}}, &out)
	return out, err
}

// OrderBook fetches the book snapshot for a pair.
func (c *Client) OrderBook(ctx context.Context, pair string, limit int) (map[string]OrderBook, error) {
	params := url.Values{"pair": {pair}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	out := make(map[string]OrderBook)
	err := c.invoke(ctx, CmdOrderBook, params, &out)
	return out, err
}

// Ticker fetches 24h statistics for all pairs.
func (c *Client) Ticker(ctx context.Context) (map[string]Ticker, error) {
	out := make(map[string]Ticker)
	err := c.invoke(ctx, CmdTicker, nil, &out)
	return out, err
}

// PairSettings fetches the exchange-enforced limits for all pairs.
func (c *Client) PairSettings(ctx context.Context) (map[string]PairSettings, error) {
	out := make(map[string]PairSettings)
	err := c.invoke(ctx, CmdPairSettings, nil, &out)
	return out, err
}

// Currency lists the currencies known to the exchange.
func (c *Client) Currency(ctx context.Context) ([]string, error) {
	var out []string
	err := c.invoke(ctx, CmdCurrency, nil, &out)
	return out, err
}

// UserInfo fetches the account balances of the bound profile.
func (c *Client) UserInfo(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := c.invoke(ctx, CmdUserInfo, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderCreate places a new order and returns the exchange-assigned
// identifier.
func (c *Client) OrderCreate(ctx context.Context, req OrderCreateRequest) (*OrderCreateResult, error) {
	params := url.Values{
		"pair":     {req.Pair},
		"quantity": {req.Quantity.String()},
		"price":    {req.Price.String()},
		"type":     {req.Type},
	}
	var out OrderCreateResult
	if err := c.invoke(ctx, CmdOrderCreate, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderCancel cancels an open order by its exchange identifier.
func (c *Client) OrderCancel(ctx context.Context, orderID string) error {
	return c.invoke(ctx, CmdOrderCancel, url.Values{"order_id": {orderID}}, nil)
}

// UserOpenOrders lists the profile's open orders, keyed by pair ticker.
func (c *Client) UserOpenOrders(ctx context.Context) (map[string][]OpenOrder, error) {
	out := make(map[string][]OpenOrder)
	err := c.invoke(ctx, CmdUserOpenOrders, nil, &out)
	return out, err
}

// UserTrades lists the profile's fills for a pair, keyed by pair ticker.
func (c *Client) UserTrades(ctx context.Context, pair string) (map[string][]UserTrade, error) {
	out := make(map[string][]UserTrade)
	err := c.invoke(ctx, CmdUserTrades, url.Values{"pair": {pair}}, &out)
	return out, err
}

// UserCancelledOrders lists the profile's cancelled orders.
func (c *Client) UserCancelledOrders(ctx context.Context) ([]CancelledOrder, error) {
	var out []CancelledOrder
	err := c.invoke(ctx, CmdUserCancelledOrders, nil, &out)
	return out, err
}

// OrderTrades fetches the fill history of one order.
func (c *Client) OrderTrades(ctx context.Context, orderID string) (*OrderTradesResult, error) {
	var out OrderTradesResult
	if err := c.invoke(ctx, CmdOrderTrades, url.Values{"order_id": {orderID}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DepositAddress fetches the profile's deposit addresses, keyed by currency.
func (c *Client) DepositAddress(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := c.invoke(ctx, CmdDepositAddress, nil, &out)
	return out, err
}

// WalletHistory fetches wallet movements for a day, formatted dd.mm.yyyy;
// empty means today.
func (c *Client) WalletHistory(ctx context.Context, date string) (*WalletHistory, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	var out WalletHistory
	if err := c.invoke(ctx, CmdWalletHistory, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

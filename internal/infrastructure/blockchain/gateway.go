package blockchain

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
)

// ERC-20 function selectors
var (
	balanceOfSelector = common.Hex2Bytes("70a08231")
	decimalsSelector  = common.Hex2Bytes("313ce567")

	// keccak256("Transfer(address,address,uint256)")
	transferEventTopic = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
)

const defaultTokenDecimals = 6

// Gateway exposes the USDC read surface the application needs. Read paths
// degrade to benign defaults when the RPC endpoint is unreachable; only
// proof verification propagates unavailability so callers can ask the
// client to retry.
type Gateway struct {
	backend Backend
	token   common.Address
	timeout time.Duration

	mu       sync.Mutex
	decimals *uint8
}

// NewGateway dials the RPC endpoint and binds the gateway to one token
// contract.
func NewGateway(rpcURL, tokenAddress string, timeout time.Duration) (*Gateway, error) {
	client, err := NewEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}
	return NewGatewayWithBackend(client, tokenAddress, timeout), nil
}

// NewGatewayWithBackend builds a gateway over an existing backend. Tests
// use this with a stub; production wiring goes through NewGateway.
func NewGatewayWithBackend(backend Backend, tokenAddress string, timeout time.Duration) *Gateway {
	return &Gateway{
		backend: backend,
		token:   common.HexToAddress(tokenAddress),
		timeout: timeout,
	}
}

// Close releases the underlying RPC connection when there is one
func (g *Gateway) Close() {
	if closer, ok := g.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

// IsConnected reports whether the RPC endpoint currently answers
func (g *Gateway) IsConnected(ctx context.Context) bool {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	_, err := g.backend.BlockNumber(ctx)
	return err == nil
}

// GetBalance reads the token balance of a wallet, scaled to a decimal
// string. An unreachable endpoint yields {"0", Unavailable: true} rather
// than an error.
func (g *Gateway) GetBalance(ctx context.Context, walletAddress string) entities.BalanceResult {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	owner := common.HexToAddress(walletAddress)
	data := append(append([]byte{}, balanceOfSelector...), common.LeftPadBytes(owner.Bytes(), 32)...)

	raw, err := g.backend.CallContract(ctx, ethereum.CallMsg{To: &g.token, Data: data}, nil)
	if err != nil {
		return entities.BalanceResult{Amount: "0", Unavailable: true}
	}

	amount := new(big.Int).SetBytes(raw)
	return entities.BalanceResult{Amount: formatUnits(amount, g.tokenDecimals(ctx))}
}

// VerifyTransactionSuccess checks that the hash names a mined, successful
// transaction. A missing transaction is (false, nil); a dead endpoint is
// (false, ErrChainUnavailable) so the caller can return a retryable error.
func (g *Gateway) VerifyTransactionSuccess(ctx context.Context, txHash string) (bool, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	receipt, err := g.backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return false, nil
		}
		return false, domainerrors.ErrChainUnavailable
	}
	return receipt.Status == types.ReceiptStatusSuccessful, nil
}

// DecodeTransferEvent extracts the token's Transfer log from a mined
// transaction. (nil, nil) means the transaction exists but carries no
// matching transfer.
func (g *Gateway) DecodeTransferEvent(ctx context.Context, txHash string) (*entities.TransferEvent, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	receipt, err := g.backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, domainerrors.ErrChainUnavailable
	}

	for _, log := range receipt.Logs {
		if log.Address != g.token {
			continue
		}
		// Transfer(from indexed, to indexed, value)
		if len(log.Topics) != 3 || log.Topics[0] != transferEventTopic {
			continue
		}
		amount := new(big.Int).SetBytes(log.Data)
		return &entities.TransferEvent{
			From:   strings.ToLower(common.HexToAddress(log.Topics[1].Hex()).Hex()),
			To:     strings.ToLower(common.HexToAddress(log.Topics[2].Hex()).Hex()),
			Amount: formatUnits(amount, g.tokenDecimals(ctx)),
		}, nil
	}
	return nil, nil
}

// GetTransactionDetail assembles display metadata for a transaction hash.
// Every failure collapses to nil; the detail is enrichment, never a
// dependency.
func (g *Gateway) GetTransactionDetail(ctx context.Context, txHash string) *entities.TransactionDetail {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	hash := common.HexToHash(txHash)
	receipt, err := g.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil
	}

	detail := &entities.TransactionDetail{
		Hash:        hash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Status:      "failed",
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		detail.Status = "success"
	}

	if event, _ := g.DecodeTransferEvent(ctx, txHash); event != nil {
		detail.From = event.From
		detail.To = event.To
		detail.Value = event.Amount
	}

	if header, err := g.backend.HeaderByNumber(ctx, receipt.BlockNumber); err == nil {
		detail.Timestamp = int64(header.Time)
	}
	return detail
}

// tokenDecimals reads and caches the token's decimals. While the endpoint
// is down we fall back to the USDC default without poisoning the cache.
func (g *Gateway) tokenDecimals(ctx context.Context) uint8 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.decimals != nil {
		return *g.decimals
	}

	raw, err := g.backend.CallContract(ctx, ethereum.CallMsg{To: &g.token, Data: decimalsSelector}, nil)
	if err != nil || len(raw) == 0 {
		return defaultTokenDecimals
	}

	d := uint8(new(big.Int).SetBytes(raw).Uint64())
	g.decimals = &d
	return d
}

func (g *Gateway) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// formatUnits scales a raw token amount down by decimals, trimming
// trailing zeros from the fraction
func formatUnits(amount *big.Int, decimals uint8) string {
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).DivMod(amount, divisor, new(big.Int))

	fracStr := strings.TrimRight(leftPadZeros(frac.String(), int(decimals)), "0")
	if fracStr == "" {
		return whole.String()
	}
	return whole.String() + "." + fracStr
}

func leftPadZeros(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

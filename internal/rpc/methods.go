package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/labsx402/paradoxd/internal/storage/eventlog"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
)

// Service bundles the dependencies the RPC methods operate on.
type Service struct {
	Engine    *engine.Engine
	Store     *statestore.Store
	Journal   *eventlog.Journal
	Clock     engine.Clock
	Version   string
	StartedAt time.Time
}

// callerParams are the fields shared by every mutating method. PubKey
// and Signature are optional; when present the caller is verified
// cryptographically, otherwise the transport is trusted.
type callerParams struct {
	Mint      string `json:"mint"`
	Caller    string `json:"caller"`
	PubKey    string `json:"pub_key,omitempty"`
	Signature string `json:"signature,omitempty"`
}

func parseMint(s string) (state.Mint, error) {
	var m state.Mint
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(m) {
		return m, fmt.Errorf("mint must be %d hex bytes", len(m))
	}
	copy(m[:], raw)
	return m, nil
}

func parseAccount(s string) (state.AccountID, error) {
	var a state.AccountID
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(a) {
		return a, fmt.Errorf("account must be %d hex bytes", len(a))
	}
	copy(a[:], raw)
	return a, nil
}

func parseReason(s string) (state.TriggerReason, error) {
	switch s {
	case "admin":
		return state.ReasonAdmin, nil
	case "liquidity_drop":
		return state.ReasonLiquidityDrop, nil
	case "withdrawal_anomaly":
		return state.ReasonWithdrawalAnomaly, nil
	default:
		return state.ReasonNone, fmt.Errorf("unknown trigger reason %q", s)
	}
}

func accountHex(a state.AccountID) string {
	return hex.EncodeToString(a[:])
}

func mintHex(m state.Mint) string {
	return hex.EncodeToString(m[:])
}

// decodeParams unmarshals the single params object, rejecting absent
// params for methods that need them.
func decodeParams(params json.RawMessage, into interface{}) *RpcError {
	if params == nil {
		return RpcErrorInvalidParams("missing params object")
	}
	if err := json.Unmarshal(params, into); err != nil {
		return RpcErrorInvalidParams("malformed params: " + err.Error())
	}
	return nil
}

// resolveCaller parses the shared caller fields and, when a public key
// is attached, verifies the signature and the key-to-caller binding.
func (s *Service) resolveCaller(method string, cp callerParams) (state.Mint, state.AccountID, *RpcError) {
	mint, err := parseMint(cp.Mint)
	if err != nil {
		return state.Mint{}, state.ZeroAccount, RpcErrorInvalidParams(err.Error())
	}
	caller, err := parseAccount(cp.Caller)
	if err != nil {
		return state.Mint{}, state.ZeroAccount, RpcErrorInvalidParams(err.Error())
	}
	if cp.PubKey != "" {
		if rpcErr := verifyCaller(method, cp); rpcErr != nil {
			return state.Mint{}, state.ZeroAccount, rpcErr
		}
	}
	return mint, caller, nil
}

// apply runs one operation through the engine and converts the result.
func (s *Service) apply(ctx context.Context, op engine.Operation) (interface{}, *RpcError) {
	res := s.Engine.Apply(ctx, op)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]interface{}{
		"applied":       true,
		"engine_result": res.String(),
	}, nil
}

// load fetches one record, mapping a missing entry onto entryNotFound.
func (s *Service) load(ctx context.Context, k keylet.Keylet, what string) (state.Record, *RpcError) {
	rec, err := s.Store.Load(ctx, k)
	if errors.Is(err, statestore.ErrNotFound) {
		return nil, RpcErrorNotFound(what)
	}
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return rec, nil
}

// registerAllMethods wires every method name to its handler.
func (s *Server) registerAllMethods() {
	guest := func(name string, fn func(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError)) {
		s.registry.Register(name, methodFunc{fn: fn, role: RoleGuest})
	}

	// mutations
	guest("config_init", s.service.configInit)
	guest("fee_change_announce", s.service.feeChangeAnnounce)
	guest("fee_change_execute", s.service.feeChangeExecute)
	guest("fee_change_cancel", s.service.feeChangeCancel)
	guest("fees_harvest", s.service.feesHarvest)
	guest("vesting_init", s.service.vestingInit)
	guest("unlock_request", s.service.unlockRequest)
	guest("treasury_init", s.service.treasuryInit)
	guest("treasury_spend", s.service.treasurySpend)
	guest("lp_lock_init", s.service.lpLockInit)
	guest("lp_lock_increase", s.service.lpLockIncrease)
	guest("withdrawal_request", s.service.withdrawalRequest)
	guest("withdrawal_cancel", s.service.withdrawalCancel)
	guest("withdrawal_execute", s.service.withdrawalExecute)
	guest("tier_reset", s.service.tierReset)
	guest("lp_growth_init", s.service.lpGrowthInit)
	guest("fee_record", s.service.feeRecord)
	guest("growth_set_lock", s.service.growthSetLock)
	guest("growth_try_execute", s.service.growthTryExecute)
	guest("armageddon_init", s.service.armageddonInit)
	guest("armageddon_trigger", s.service.armageddonTrigger)
	guest("armageddon_recover", s.service.armageddonRecover)

	// queries
	guest("token_config", s.service.tokenConfig)
	guest("lp_growth", s.service.lpGrowth)
	guest("lp_lock", s.service.lpLock)
	guest("treasury", s.service.treasury)
	guest("vesting", s.service.vesting)
	guest("armageddon", s.service.armageddon)
	guest("events_recent", s.service.eventsRecent)
	guest("server_info", s.service.serverInfo)
}

func (s *Service) configInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Decimals         uint8  `json:"decimals"`
		TransferFeeBps   uint16 `json:"transfer_fee_bps"`
		LpShareBps       uint16 `json:"lp_share_bps"`
		BurnShareBps     uint16 `json:"burn_share_bps"`
		TreasuryShareBps uint16 `json:"treasury_share_bps"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("config_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.InitTokenConfig{
		Mint:             mint,
		Caller:           caller,
		Decimals:         p.Decimals,
		TransferFeeBps:   p.TransferFeeBps,
		LpShareBps:       p.LpShareBps,
		BurnShareBps:     p.BurnShareBps,
		TreasuryShareBps: p.TreasuryShareBps,
	})
}

func (s *Service) feeChangeAnnounce(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		NewBps uint16 `json:"new_bps"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("fee_change_announce", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.AnnounceFeeChange{Mint: mint, Caller: caller, NewBps: p.NewBps})
}

func (s *Service) feeChangeExecute(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("fee_change_execute", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.ExecuteFeeChange{Mint: mint, Caller: caller})
}

func (s *Service) feeChangeCancel(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("fee_change_cancel", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.CancelFeeChange{Mint: mint, Caller: caller})
}

func (s *Service) feesHarvest(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Sources []string `json:"sources"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("fees_harvest", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	sources := make([]state.AccountID, 0, len(p.Sources))
	for _, raw := range p.Sources {
		src, err := parseAccount(raw)
		if err != nil {
			return nil, RpcErrorInvalidParams("sources: " + err.Error())
		}
		sources = append(sources, src)
	}
	return s.apply(ctx.Context, engine.HarvestFees{Mint: mint, Caller: caller, Sources: sources})
}

func (s *Service) vestingInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Beneficiary     string `json:"beneficiary"`
		TotalAllocation uint64 `json:"total_allocation"`
		LiquidAtTge     uint64 `json:"liquid_at_tge"`
		StartTimestamp  int64  `json:"start_timestamp"`
		CliffSeconds    int64  `json:"cliff_seconds"`
		VestingSeconds  int64  `json:"vesting_seconds"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("vesting_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	beneficiary, err := parseAccount(p.Beneficiary)
	if err != nil {
		return nil, RpcErrorInvalidParams("beneficiary: " + err.Error())
	}
	return s.apply(ctx.Context, engine.InitVesting{
		Mint:            mint,
		Caller:          caller,
		Beneficiary:     beneficiary,
		TotalAllocation: p.TotalAllocation,
		LiquidAtTge:     p.LiquidAtTge,
		StartTimestamp:  p.StartTimestamp,
		CliffSeconds:    p.CliffSeconds,
		VestingSeconds:  p.VestingSeconds,
	})
}

func (s *Service) unlockRequest(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Amount uint64 `json:"amount"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("unlock_request", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.RequestUnlock{Mint: mint, Caller: caller, Amount: p.Amount})
}

func (s *Service) treasuryInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		SpendAuthority       string `json:"spend_authority"`
		MaxSpendBpsPerPeriod uint16 `json:"max_spend_bps_per_period"`
		PeriodSeconds        int64  `json:"period_seconds"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("treasury_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	authority, err := parseAccount(p.SpendAuthority)
	if err != nil {
		return nil, RpcErrorInvalidParams("spend_authority: " + err.Error())
	}
	return s.apply(ctx.Context, engine.InitTreasury{
		Mint:                 mint,
		Caller:               caller,
		SpendAuthority:       authority,
		MaxSpendBpsPerPeriod: p.MaxSpendBpsPerPeriod,
		PeriodSeconds:        p.PeriodSeconds,
	})
}

func (s *Service) treasurySpend(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Recipient string `json:"recipient"`
		Amount    uint64 `json:"amount"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("treasury_spend", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	recipient, err := parseAccount(p.Recipient)
	if err != nil {
		return nil, RpcErrorInvalidParams("recipient: " + err.Error())
	}
	return s.apply(ctx.Context, engine.TreasurySpend{Mint: mint, Caller: caller, Recipient: recipient, Amount: p.Amount})
}

func (s *Service) lpLockInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		InitialAmount uint64 `json:"initial_amount"`
		Tier          uint8  `json:"tier"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("lp_lock_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.InitLpLock{
		Mint:          mint,
		Caller:        caller,
		InitialAmount: p.InitialAmount,
		Tier:          state.LockTier(p.Tier),
	})
}

func (s *Service) lpLockIncrease(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Amount uint64 `json:"amount"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("lp_lock_increase", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.IncreaseLock{Mint: mint, Caller: caller, Amount: p.Amount})
}

func (s *Service) withdrawalRequest(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("withdrawal_request", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.RequestWithdrawal{Mint: mint, Caller: caller})
}

func (s *Service) withdrawalCancel(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("withdrawal_cancel", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.CancelWithdrawal{Mint: mint, Caller: caller})
}

func (s *Service) withdrawalExecute(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Amount uint64 `json:"amount"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("withdrawal_execute", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.ExecuteWithdrawal{Mint: mint, Caller: caller, Amount: p.Amount})
}

func (s *Service) tierReset(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Tier uint8 `json:"tier"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("tier_reset", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.ResetTier{Mint: mint, Caller: caller, Tier: state.LockTier(p.Tier)})
}

func (s *Service) lpGrowthInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		PoolAddress     string `json:"pool_address"`
		MinFeeThreshold uint64 `json:"min_fee_threshold"`
		CooldownSeconds int64  `json:"cooldown_seconds"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("lp_growth_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	pool, err := parseAccount(p.PoolAddress)
	if err != nil {
		return nil, RpcErrorInvalidParams("pool_address: " + err.Error())
	}
	return s.apply(ctx.Context, engine.InitLpGrowth{
		Mint:            mint,
		Caller:          caller,
		PoolAddress:     pool,
		MinFeeThreshold: p.MinFeeThreshold,
		CooldownSeconds: p.CooldownSeconds,
	})
}

func (s *Service) feeRecord(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Mint   string `json:"mint"`
		Amount uint64 `json:"amount"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return s.apply(ctx.Context, engine.RecordFee{Mint: mint, Amount: p.Amount})
}

func (s *Service) growthSetLock(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Locked bool `json:"locked"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("growth_set_lock", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.SetGrowthLock{Mint: mint, Caller: caller, Locked: p.Locked})
}

func (s *Service) growthTryExecute(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("growth_try_execute", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.TryExecuteGrowth{Mint: mint, Caller: caller})
}

func (s *Service) armageddonInit(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		TriggerAuthority     string `json:"trigger_authority"`
		RecoveryThresholdBps uint16 `json:"recovery_threshold_bps"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("armageddon_init", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	authority, err := parseAccount(p.TriggerAuthority)
	if err != nil {
		return nil, RpcErrorInvalidParams("trigger_authority: " + err.Error())
	}
	return s.apply(ctx.Context, engine.InitArmageddon{
		Mint:                 mint,
		Caller:               caller,
		TriggerAuthority:     authority,
		RecoveryThresholdBps: p.RecoveryThresholdBps,
	})
}

func (s *Service) armageddonTrigger(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		callerParams
		Reason string `json:"reason"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("armageddon_trigger", p.callerParams)
	if rpcErr != nil {
		return nil, rpcErr
	}
	reason, err := parseReason(p.Reason)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return s.apply(ctx.Context, engine.TriggerArmageddon{Mint: mint, Caller: caller, Reason: reason})
}

func (s *Service) armageddonRecover(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, caller, rpcErr := s.resolveCaller("armageddon_recover", p)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.apply(ctx.Context, engine.RecoverArmageddon{Mint: mint, Caller: caller})
}

type mintParams struct {
	Mint string `json:"mint"`
}

func (s *Service) tokenConfig(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p mintParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.TokenConfig(mint), "token config")
	if rpcErr != nil {
		return nil, rpcErr
	}
	cfg := rec.(*state.TokenConfig)
	result := map[string]interface{}{
		"mint":                   mintHex(cfg.Mint),
		"admin":                  accountHex(cfg.Admin),
		"decimals":               cfg.Decimals,
		"transfer_fee_bps":       cfg.TransferFeeBps,
		"lp_share_bps":           cfg.LpShareBps,
		"burn_share_bps":         cfg.BurnShareBps,
		"treasury_share_bps":     cfg.TreasuryShareBps,
		"total_fees_collected":   cfg.TotalFeesCollected,
		"total_fees_distributed": cfg.TotalFeesDistributed,
		"last_fee_update":        cfg.LastFeeUpdate,
	}
	if cfg.HasPendingFeeChange() {
		result["pending_fee_bps"] = cfg.PendingFeeBps
		result["pending_fee_announced_at"] = cfg.PendingFeeAnnouncedAt
		result["pending_fee_executable_at"] = cfg.FeeChangeExecutableAt()
	}
	return result, nil
}

func (s *Service) lpGrowth(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p mintParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.LpGrowth(mint), "lp growth state")
	if rpcErr != nil {
		return nil, rpcErr
	}
	g := rec.(*state.LpGrowthState)
	return map[string]interface{}{
		"mint":                   mintHex(g.Mint),
		"pool_address":           accountHex(g.PoolAddress),
		"accumulated_fee_amount": g.AccumulatedFeeAmount,
		"min_fee_threshold":      g.MinFeeThreshold,
		"cooldown_seconds":       g.CooldownSeconds,
		"last_growth_at":         g.LastGrowthAt,
		"total_quote_added":      g.TotalQuoteAdded,
		"total_tokens_added":     g.TotalTokensAdded,
		"growth_executions":      g.GrowthExecutions,
		"locked":                 g.Locked,
	}, nil
}

func (s *Service) lpLock(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p mintParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.LpLock(mint), "lp lock")
	if rpcErr != nil {
		return nil, rpcErr
	}
	l := rec.(*state.LpLock)
	result := map[string]interface{}{
		"mint":                mintHex(l.Mint),
		"admin":               accountHex(l.Admin),
		"locked_amount":       l.LockedAmount,
		"tier":                l.Tier.String(),
		"tier_started_at":     l.TierStartedAt,
		"initial_lock_amount": l.InitialLockAmount,
		"total_withdrawn":     l.TotalWithdrawn,
	}
	if l.UnlockRequestedAt != 0 {
		result["unlock_requested_at"] = l.UnlockRequestedAt
		result["unlock_matures_at"] = l.UnlockRequestedAt + l.Tier.Duration()
	}
	return result, nil
}

func (s *Service) treasury(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p mintParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.Treasury(mint), "treasury")
	if rpcErr != nil {
		return nil, rpcErr
	}
	t := rec.(*state.Treasury)
	return map[string]interface{}{
		"mint":                     mintHex(t.Mint),
		"spend_authority":          accountHex(t.SpendAuthority),
		"balance":                  t.Balance,
		"total_received":           t.TotalReceived,
		"total_spent":              t.TotalSpent,
		"max_spend_bps_per_period": t.MaxSpendBpsPerPeriod,
		"period_seconds":           t.PeriodSeconds,
		"period_start":             t.PeriodStart,
		"spent_this_period":        t.SpentThisPeriod,
	}, nil
}

func (s *Service) vesting(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Mint        string `json:"mint"`
		Beneficiary string `json:"beneficiary"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	beneficiary, err := parseAccount(p.Beneficiary)
	if err != nil {
		return nil, RpcErrorInvalidParams("beneficiary: " + err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.Vesting(mint, beneficiary), "vesting schedule")
	if rpcErr != nil {
		return nil, rpcErr
	}
	v := rec.(*state.VestingSchedule)
	result := map[string]interface{}{
		"mint":             mintHex(v.Mint),
		"beneficiary":      accountHex(v.Beneficiary),
		"total_allocation": v.TotalAllocation,
		"liquid_at_tge":    v.LiquidAtTge,
		"start_timestamp":  v.StartTimestamp,
		"cliff_seconds":    v.CliffSeconds,
		"vesting_seconds":  v.VestingSeconds,
		"claimed_amount":   v.ClaimedAmount,
	}
	if unlockable, err := v.MaxUnlockable(s.Clock.Now().Unix()); err == nil {
		result["max_unlockable"] = unlockable
	}
	return result, nil
}

func (s *Service) armageddon(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p mintParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	rec, rpcErr := s.load(ctx.Context, keylet.Armageddon(mint), "armageddon state")
	if rpcErr != nil {
		return nil, rpcErr
	}
	a := rec.(*state.ArmageddonState)
	result := map[string]interface{}{
		"mint":                   mintHex(a.Mint),
		"trigger_authority":      accountHex(a.TriggerAuthority),
		"triggered":              a.Triggered,
		"recovery_threshold_bps": a.RecoveryThresholdBps,
	}
	if a.Triggered {
		result["triggered_at"] = a.TriggeredAt
		result["reason"] = a.Reason.String()
		result["snapshot"] = map[string]interface{}{
			"lp_value":         a.Snapshot.LpValue,
			"treasury_balance": a.Snapshot.TreasuryBalance,
		}
	}
	return result, nil
}

func (s *Service) eventsRecent(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Mint  string `json:"mint"`
		Limit int    `json:"limit"`
	}
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	mint, err := parseMint(p.Mint)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	if s.Journal == nil {
		return map[string]interface{}{"events": []engine.Event{}}, nil
	}
	events, err := s.Journal.Recent(ctx.Context, mint, p.Limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	if events == nil {
		events = []engine.Event{}
	}
	return map[string]interface{}{"events": events}, nil
}

func (s *Service) serverInfo(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return map[string]interface{}{
		"version":        s.Version,
		"time":           s.Clock.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(s.StartedAt).Seconds()),
	}, nil
}

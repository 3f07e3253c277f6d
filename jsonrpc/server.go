// Package jsonrpc exposes the staking operations over JSON-RPC 2.0 via an
// HTTP bridge. Amounts cross the wire as decimal strings so clients never
// lose precision to floating point.
package jsonrpc

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/interfaces"
	"github.com/seededlabs/seedpool/jsonx"
	"github.com/seededlabs/seedpool/logx"
)

const internalErrorCode = -32000

func toJRPC2Error(err error) error {
	if err == nil {
		return nil
	}
	var stakeError errors.StakeError
	if jsonx.Unmarshal([]byte(err.Error()), &stakeError) == nil && stakeError.Code != "" {
		return jrpc2.Errorf(jrpc2.Code(internalErrorCode), "%s", stakeError.Message).WithData(stakeError)
	}
	return jrpc2.Errorf(jrpc2.Code(internalErrorCode), "%s", err.Error())
}

// --- Params/Results ---

type ownerParams struct {
	Owner string `json:"owner"`
}

type amountParams struct {
	Owner  string `json:"owner"`
	Amount string `json:"amount"`
}

type stakeRecordResponse struct {
	Owner           string `json:"owner"`
	StakedAmount    string `json:"staked_amount"`
	LastAccrualTime int64  `json:"last_accrual_time"`
	Bump            uint8  `json:"bump"`
	Created         bool   `json:"created,omitempty"`
}

type harvestResponse struct {
	Owner  string `json:"owner"`
	Reward string `json:"reward"`
}

type balancesResponse struct {
	Owner           string `json:"owner"`
	WalletBalance   string `json:"wallet_balance"`
	StakedAmount    string `json:"staked_amount"`
	PendingReward   string `json:"pending_reward"`
	CustodyTotal    string `json:"custody_total"`
	LastAccrualTime int64  `json:"last_accrual_time"`
	Decimals        uint32 `json:"decimals"`
}

type poolInfoResponse struct {
	ProtocolName   string `json:"protocol_name"`
	PoolAddress    string `json:"pool_address"`
	Authority      string `json:"authority"`
	CustodyAccount string `json:"custody_account"`
	AssetMint      string `json:"asset_mint"`
	CustodyBalance string `json:"custody_balance"`
	TotalStaked    string `json:"total_staked"`
}

// --- Server ---

type Server struct {
	addr       string
	stakingSvc interfaces.StakingService
	healthSvc  interfaces.HealthService
	corsConfig CORSConfig
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

func NewServer(addr string, stakingSvc interfaces.StakingService, healthSvc interfaces.HealthService) *Server {
	return &Server{
		addr:       addr,
		stakingSvc: stakingSvc,
		healthSvc:  healthSvc,
	}
}

// SetCORSConfig overrides the default (disabled) CORS policy
func (s *Server) SetCORSConfig(cfg CORSConfig) {
	s.corsConfig = cfg
}

func (s *Server) Start() {
	methods := s.buildMethodMap()
	jh := jhttp.NewBridge(methods, &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		jh.ServeHTTP(w, r)
	}))

	logx.Info("JSONRPC", fmt.Sprintf("Listening on %s", s.addr))
	go func() {
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			logx.Error("JSONRPC", "server stopped: ", err)
		}
	}()
}

func (s *Server) buildMethodMap() handler.Map {
	return handler.Map{
		"staking.bootstrap": handler.New(func(ctx context.Context, p ownerParams) (*stakeRecordResponse, error) {
			record, created, err := s.stakingSvc.Bootstrap(ctx, p.Owner)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			resp := newStakeRecordResponse(record.Owner, record.StakedAmount.Dec(), record.LastAccrualTime, record.Bump)
			resp.Created = created
			return resp, nil
		}),
		"staking.enterstake": handler.New(func(ctx context.Context, p amountParams) (*stakeRecordResponse, error) {
			amount, err := parseAmount(p.Amount)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			record, err := s.stakingSvc.EnterStake(ctx, p.Owner, amount)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return newStakeRecordResponse(record.Owner, record.StakedAmount.Dec(), record.LastAccrualTime, record.Bump), nil
		}),
		"staking.beginunstake": handler.New(func(ctx context.Context, p amountParams) (*stakeRecordResponse, error) {
			amount, err := parseAmount(p.Amount)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			record, err := s.stakingSvc.BeginUnstake(ctx, p.Owner, amount)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return newStakeRecordResponse(record.Owner, record.StakedAmount.Dec(), record.LastAccrualTime, record.Bump), nil
		}),
		"staking.harvest": handler.New(func(ctx context.Context, p ownerParams) (*harvestResponse, error) {
			reward, err := s.stakingSvc.Harvest(ctx, p.Owner)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &harvestResponse{Owner: p.Owner, Reward: reward.Dec()}, nil
		}),
		"staking.querybalances": handler.New(func(ctx context.Context, p ownerParams) (*balancesResponse, error) {
			balances, err := s.stakingSvc.QueryBalances(ctx, p.Owner)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &balancesResponse{
				Owner:           balances.Owner,
				WalletBalance:   balances.WalletBalance.Dec(),
				StakedAmount:    balances.StakedAmount.Dec(),
				PendingReward:   balances.PendingReward.Dec(),
				CustodyTotal:    balances.CustodyTotal.Dec(),
				LastAccrualTime: balances.LastAccrualTime,
				Decimals:        config.GetDecimalsFactor(),
			}, nil
		}),
		"staking.poolinfo": handler.New(func(ctx context.Context) (*poolInfoResponse, error) {
			info, err := s.stakingSvc.PoolInfo(ctx)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &poolInfoResponse{
				ProtocolName:   info.ProtocolName,
				PoolAddress:    info.PoolAddress,
				Authority:      info.Authority,
				CustodyAccount: info.CustodyAccount,
				AssetMint:      info.AssetMint,
				CustodyBalance: info.CustodyBalance.Dec(),
				TotalStaked:    info.TotalStaked.Dec(),
			}, nil
		}),
		"health.check": handler.New(func(ctx context.Context) (*interfaces.HealthStatus, error) {
			status, err := s.healthSvc.Check(ctx)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return status, nil
		}),
	}
}

func newStakeRecordResponse(owner, staked string, lastAccrual int64, bump uint8) *stakeRecordResponse {
	return &stakeRecordResponse{
		Owner:           owner,
		StakedAmount:    staked,
		LastAccrualTime: lastAccrual,
		Bump:            bump,
	}
}

// parseAmount accepts decimal strings with optional underscore separators
func parseAmount(raw string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return nil, errors.NewError(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount)
	}
	return amount, nil
}

// --- Helpers ---

func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	if len(s.corsConfig.AllowedOrigins) > 0 {
		if s.corsConfig.AllowedOrigins[0] == "*" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			origin := r.Header.Get("Origin")
			for _, allowed := range s.corsConfig.AllowedOrigins {
				if origin == allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
	}
	if len(s.corsConfig.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(s.corsConfig.AllowedMethods, ", "))
	}
	if len(s.corsConfig.AllowedHeaders) > 0 {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(s.corsConfig.AllowedHeaders, ", "))
	}
	if s.corsConfig.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", fmt.Sprintf("%d", s.corsConfig.MaxAge))
	}
}

// CORSFromEnv reads environment variables and constructs a CORSConfig.
// Returns (cfg, true) if any CORS-related env var is set; otherwise (zero, false).
//
// Env vars:
// - CORS_ALLOWED_ORIGINS: comma-separated list
// - CORS_ALLOWED_METHODS: comma-separated list
// - CORS_ALLOWED_HEADERS: comma-separated list
// - CORS_MAX_AGE: integer seconds
func CORSFromEnv() (CORSConfig, bool) {
	origins := splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))
	methods := splitAndTrim(os.Getenv("CORS_ALLOWED_METHODS"))
	headers := splitAndTrim(os.Getenv("CORS_ALLOWED_HEADERS"))

	var maxAge int
	if raw := os.Getenv("CORS_MAX_AGE"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			maxAge = v
		}
	}

	if len(origins) == 0 && len(methods) == 0 && len(headers) == 0 && maxAge == 0 {
		return CORSConfig{}, false
	}

	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         maxAge,
	}, true
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

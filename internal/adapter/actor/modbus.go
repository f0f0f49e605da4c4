package actor

import (
	"fmt"
	"time"

	"github.com/1105nam/sihas2mqtt/internal/core/domain"
	"github.com/1105nam/sihas2mqtt/internal/util/actorutil"
	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

type ModbusActor struct {
	behavior   actor.Behavior
	stash      *actorutil.Stash
	powerMeter sihas_modbus.PowerMeterModbusReader
	airQuality sihas_modbus.AirQualityModbusReader
	logger     *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewModbusActor(powerMeter sihas_modbus.PowerMeterModbusReader, airQuality sihas_modbus.AirQualityModbusReader, logger *zap.Logger) *ModbusActor {
	act := &ModbusActor{
		powerMeter: powerMeter,
		airQuality: airQuality,
		behavior:   actor.NewBehavior(),
		stash:      &actorutil.Stash{},
		logger:     actorutil.ActorLogger(domain.ACTOR_ID_MODBUS, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *ModbusActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *ModbusActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("modbus@starting started")
		if state.powerMeter != nil {
			err := state.powerMeter.Open()
			if err != nil {
				panic(err)
			}
		}
		if state.airQuality != nil {
			err := state.airQuality.Open()
			if err != nil {
				panic(err)
			}
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.closeAll()
	default:
		state.logger.Debug("modbus@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ModbusActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("modbus@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MODBUS,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDevicesInfoRequest:
		state.logger.Debug("modbus@default: GetDevicesInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDevicesInfo),
			mapTaskResult[domain.GetDevicesInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDevicesInfoResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case domain.GetEnergyMeterRequest:
		state.logger.Debug("modbus@default: GetEnergyMeterRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getEnergyMeter),
			mapTaskResult[domain.GetEnergyMeterResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetEnergyMeterResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case domain.GetAirQualityRequest:
		state.logger.Debug("modbus@default: GetAirQualityRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getAirQuality),
			mapTaskResult[domain.GetAirQualityResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetAirQualityResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(2 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case *actor.Stopping:
		state.closeAll()
	default:
		state.logger.Debug("modbus@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *ModbusActor) WaitingModbus(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("modbus@WaitingModbus backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.closeAll()
	default:
		state.logger.Debug("modbus@WaitingModbus stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *ModbusActor) closeAll() {
	if a.powerMeter != nil {
		a.powerMeter.Close()
	}
	if a.airQuality != nil {
		a.airQuality.Close()
	}
}

func (a *ModbusActor) getDevicesInfo() (*domain.GetDevicesInfoResponse, error) {
	var powerMeter *sihas_modbus.DeviceInfo
	var airQuality *sihas_modbus.DeviceInfo
	var err error

	if a.powerMeter != nil {
		powerMeter, err = a.powerMeter.GetInfo()
		if err != nil {
			logger.Error(err)
			return nil, err
		}
	}
	if a.airQuality != nil {
		airQuality, err = a.airQuality.GetInfo()
		if err != nil {
			logger.Error(err)
			return nil, err
		}
	}
	return &domain.GetDevicesInfoResponse{
		PowerMeter: powerMeter,
		AirQuality: airQuality,
	}, nil
}

func (a *ModbusActor) getEnergyMeter() (*domain.GetEnergyMeterResponse, error) {
	var em *sihas_modbus.EnergyMeter
	var err error

	if a.powerMeter != nil {
		em, err = a.powerMeter.GetEnergyMeter()
		if err != nil {
			logger.Error(err)
			return nil, err
		}
	}
	return &domain.GetEnergyMeterResponse{
		EnergyMeter: em,
	}, nil
}

func (a *ModbusActor) getAirQuality() (*domain.GetAirQualityResponse, error) {
	var regs sihas_modbus.Registers
	var err error

	if a.airQuality != nil {
		regs, err = a.airQuality.Poll()
		if err != nil {
			logger.Error(err)
			return nil, err
		}
	}
	return &domain.GetAirQualityResponse{
		Registers: regs,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}

package actor

import (
	"fmt"
	"time"

	"github.com/1105nam/sihas2mqtt/internal/config"
	"github.com/1105nam/sihas2mqtt/internal/core/domain"
	"github.com/1105nam/sihas2mqtt/internal/core/events"
	. "github.com/1105nam/sihas2mqtt/internal/util/actorutil"
	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// MonitorActor drives the poll cycle. Every tick it asks the modbus actor
// for fresh readings of each configured device and projects the results
// onto the event stream as sensor updates.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	modbusActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream

	hasPowerMeter bool
	hasAirQuality bool
	airQuality    sihas_modbus.SnapshotState
	pendingPolls  int

	logger *zap.Logger
}

type monitorTick struct {
}

func NewMonitorActor(config *config.Config, modbusActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:      config,
		modbusActor: modbusActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_MONITOR, logger),
		eventStream: eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		}

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetDevicesInfoRequest{}, 1*time.Second), func(err error) any {
			return domain.GetDevicesInfoResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingInfoReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesInfoResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waitingInfo GetDevicesInfoResponse", zap.Error(msg.GetResponseError()))
			state.behavior.Become(state.DefaultReceive)
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waitingInfo GetDevicesInfoResponse")
		state.hasPowerMeter = msg.PowerMeter != nil
		state.hasAirQuality = msg.AirQuality != nil
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waitingInfo: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR,
			Healthy: true,
			State:   "idle",
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		state.pendingPolls = 0
		if state.hasPowerMeter {
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetEnergyMeterRequest{}, 1*time.Second), func(err error) any {
				return domain.GetEnergyMeterResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				}
			})
			state.pendingPolls++
		}
		if state.hasAirQuality {
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetAirQualityRequest{}, 1*time.Second), func(err error) any {
				return domain.GetAirQualityResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				}
			})
			state.pendingPolls++
		}

		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		if state.pendingPolls > 0 {
			state.behavior.BecomeStacked(state.WaitingPollReceive)
		}
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingPollReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetEnergyMeterResponse:
		state.handleEnergyMeter(msg)
		state.pollDone(ctx)
	case domain.GetAirQualityResponse:
		state.handleAirQuality(msg)
		state.pollDone(ctx)
	default:
		state.logger.Debug("monitor@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) pollDone(ctx actor.Context) {
	state.pendingPolls--
	if state.pendingPolls <= 0 {
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	}
}

func (state *MonitorActor) handleEnergyMeter(msg domain.GetEnergyMeterResponse) {
	if msg.HasResponseError() || msg.EnergyMeter == nil {
		// keep last published values, only drop availability
		state.logger.Error("monitor@waiting GetEnergyMeterResponse error", zap.Error(msg.GetResponseError()))
		state.eventStream.Publish(events.PowerMeterOnlineUpdateEvent(false))
		return
	}
	state.logger.Debug("monitor@waiting GetEnergyMeterResponse")
	for _, ev := range events.EnergyMeterToUpdateEvents(msg.EnergyMeter) {
		state.eventStream.Publish(ev)
	}
	state.eventStream.Publish(events.PowerMeterOnlineUpdateEvent(true))
}

func (state *MonitorActor) handleAirQuality(msg domain.GetAirQualityResponse) {
	if msg.HasResponseError() {
		state.logger.Error("monitor@waiting GetAirQualityResponse error", zap.Error(msg.GetResponseError()))
		state.airQuality.MarkUnavailable()
		state.eventStream.Publish(events.AirQualityOnlineUpdateEvent(false))
		return
	}
	state.logger.Debug("monitor@waiting GetAirQualityResponse")
	state.airQuality.ApplyPoll(msg.Registers)
	if !state.airQuality.Available() {
		state.eventStream.Publish(events.AirQualityOnlineUpdateEvent(false))
		return
	}
	evs, err := events.AirQualityToUpdateEvents(state.airQuality.Registers())
	if err != nil {
		state.logger.Error("monitor@waiting air quality snapshot error", zap.Error(err))
		state.airQuality.MarkUnavailable()
		state.eventStream.Publish(events.AirQualityOnlineUpdateEvent(false))
		return
	}
	for _, ev := range evs {
		state.eventStream.Publish(ev)
	}
	state.eventStream.Publish(events.AirQualityOnlineUpdateEvent(true))
}

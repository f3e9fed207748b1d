/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command model-operator runs the ModelDeployment controller as a single
// long-running process (spec §6 "Process interface"). Configuration is
// resolved the standard controller-runtime way: the kubeconfig named by
// $KUBECONFIG when it is set, otherwise the in-cluster service account when
// running in a pod, otherwise ~/.kube/config.
package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/server"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
	traefikv1alpha1 "github.com/jedimindtricks/model-operator/api/traefik/v1alpha1"
	"github.com/jedimindtricks/model-operator/internal/controller"
)

var scheme = clientgoscheme.Scheme

func init() {
	utilruntime.Must(mlv1alpha1.AddToScheme(scheme))
	utilruntime.Must(traefikv1alpha1.AddToScheme(scheme))
	utilruntime.Must(appsv1.AddToScheme(scheme))
	utilruntime.Must(corev1.AddToScheme(scheme))
}

type options struct {
	metricsBindAddress     string
	healthProbeBindAddress string
	leaderElect            bool
	zapOpts                zap.Options
}

func newRootCommand() *cobra.Command {
	opts := &options{
		metricsBindAddress:     ":8080",
		healthProbeBindAddress: ":8081",
	}
	opts.zapOpts.Development = false
	opts.zapOpts.Level = zapcore.InfoLevel

	cmd := &cobra.Command{
		Use:   "model-operator",
		Short: "Reconciles ModelDeployment resources into live/shadow inference workloads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.metricsBindAddress, "metrics-bind-address", opts.metricsBindAddress,
		"The address the metrics endpoint binds to.")
	fs.StringVar(&opts.healthProbeBindAddress, "health-probe-bind-address", opts.healthProbeBindAddress,
		"The address the health probe endpoint binds to.")
	fs.BoolVar(&opts.leaderElect, "leader-elect", false,
		"Enable leader election. Required when running more than one replica of this operator.")

	goFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	opts.zapOpts.BindFlags(goFlags)
	fs.AddGoFlagSet(goFlags)

	return cmd
}

func run(opts *options) error {
	logf.SetLogger(zap.New(zap.UseFlagOptions(&opts.zapOpts)))
	log := logf.Log.WithName("setup")

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: server.Options{
			BindAddress: opts.metricsBindAddress,
		},
		HealthProbeBindAddress: opts.healthProbeBindAddress,
		LeaderElection:         opts.leaderElect,
		LeaderElectionID:       "model-operator-leader-election",
	})
	if err != nil {
		log.Error(err, "unable to start manager")
		return err
	}

	reconciler := &controller.ModelDeploymentReconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("model-operator"),
	}
	if err := reconciler.SetupWithManager(mgr); err != nil {
		log.Error(err, "unable to create controller", "controller", "ModelDeployment")
		return err
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		log.Error(err, "unable to set up health check")
		return err
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		log.Error(err, "unable to set up ready check")
		return err
	}

	log.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		log.Error(err, "problem running manager")
		return err
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

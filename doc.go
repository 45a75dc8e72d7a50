/*
Package tonic allows to build and render real-time synthesis graphs.

Concept

A synthesis graph is a directed acyclic graph of nodes. There are two kinds
of nodes, running at two different rates:

    Generator - audio-rate node, produces one sample per frame;
    Control - control-rate node, produces one value per block.

Controls feed generators: a frequency of an oscillator, a cutoff of a filter
or a gate of an envelope can all be driven by controls. Generators are
combined with arithmetic into a single output generator, which is owned by
Synth.

Nodes are composed with constructors and builder methods:

    s := tonic.NewSynth()
    tempo := s.AddParameter("tempo", 120).Min(50).Max(300)
    metro := tonic.NewControlMetro().Bpm(tempo)
    tone := tonic.NewRectWave().Freq(tonic.Const(220))
    env := tonic.NewADSR(0.01, 0.1, 0, 0).Trigger(metro)
    err := s.SetOutputGen(tonic.Mul(tone, env))

SetOutputGen rejects graphs with cycles or nil inputs.

Rendering

Graph is pulled by the audio callback:

    s.FillBuffer(output, blockSize, numChannels)

Every call takes the next value of a process-wide tick counter, ticks all
controls reachable from output and pulls the output generator. A node which
is an input of several other nodes is computed only once per tick, so its
state (e.g. oscillator phase) advances exactly once per block.

FillBuffer doesn't allocate, lock or return errors. Any fault, like a cycle
introduced after validation or a non-finite sample, results in silence for
the affected block and is counted by Faults.

Parameters

Parameters are named controls which are safe to set from any goroutine while
rendering. Values are kept in atomic words and clamped to bounds:

    err := s.SetParameter("tempo", 140)
*/
package tonic

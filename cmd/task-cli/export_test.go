package main

var RunFuncWithSignalHandling = runFuncWithSignalHandling
